package service

import (
	"context"
	"sync"

	"github.com/lshigami/placement-portal/internal/rag"
	"github.com/rs/zerolog/log"
)

// KnowledgeSyncer refreshes the study assistant's knowledge base after admin
// changes. Syncs run in the background and never fail the triggering request.
type KnowledgeSyncer interface {
	Trigger(reason string)
	// Wait blocks until all triggered syncs have finished.
	Wait()
}

type knowledgeSyncer struct {
	client  rag.Client
	enabled bool
	wg      sync.WaitGroup
}

func NewKnowledgeSyncer(client rag.Client, enabled bool) KnowledgeSyncer {
	return &knowledgeSyncer{client: client, enabled: enabled}
}

func (k *knowledgeSyncer) Trigger(reason string) {
	if !k.enabled || k.client == nil {
		return
	}
	k.wg.Add(1)
	go func() {
		defer k.wg.Done()
		// The client bounds the call with the configured sync timeout.
		if _, err := k.client.Sync(context.Background()); err != nil {
			log.Warn().Err(err).Str("reason", reason).Msg("Knowledge sync failed")
			return
		}
		log.Info().Str("reason", reason).Msg("Knowledge sync completed")
	}()
}

func (k *knowledgeSyncer) Wait() {
	k.wg.Wait()
}
