package model

import (
	"time"

	"gorm.io/gorm"
)

// Valid answer keys for a multiple-choice question.
var AnswerKeys = []string{"A", "B", "C", "D"}

type Question struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Text          string         `json:"question" gorm:"type:text;not null"`
	OptionA       string         `json:"option_a" gorm:"not null"`
	OptionB       string         `json:"option_b" gorm:"not null"`
	OptionC       string         `json:"option_c" gorm:"not null"`
	OptionD       string         `json:"option_d" gorm:"not null"`
	CorrectAnswer string         `json:"correct_answer" gorm:"size:1;not null"`
	Marks         int            `json:"marks" gorm:"not null"`
	Difficulty    string         `json:"difficulty"`
	Category      string         `json:"category" gorm:"index"`
	IsActive      bool           `json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Option returns the text of the option with the given key, or "" for an unknown key.
func (q *Question) Option(key string) string {
	switch key {
	case "A":
		return q.OptionA
	case "B":
		return q.OptionB
	case "C":
		return q.OptionC
	case "D":
		return q.OptionD
	}
	return ""
}
