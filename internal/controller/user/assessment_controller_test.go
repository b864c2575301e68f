package user

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/placement-portal/internal/dto"
	"github.com/lshigami/placement-portal/internal/middleware"
	"github.com/lshigami/placement-portal/internal/model"
	"github.com/lshigami/placement-portal/internal/repository"
	"github.com/lshigami/placement-portal/internal/service"
	"github.com/lshigami/placement-portal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type bearerUsers map[string]*model.User

func (b bearerUsers) Authenticate(_ context.Context, token string) (*model.User, error) {
	if u, ok := b[token]; ok {
		return u, nil
	}
	return nil, errors.New("unknown token")
}

type attemptAPI struct {
	t      *testing.T
	engine *gin.Engine
}

func (a attemptAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func TestAttemptFlowOverHTTP(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateStudent(t, db, "nina")
	other := testutil.CreateStudent(t, db, "omar")
	assessment, questions := testutil.CreateAssessment(t, db, testutil.AssessmentFixture{
		Title:                  "Verbal Reasoning",
		PassPercentage:         50,
		TotalMarks:             10,
		ShowResultsImmediately: true,
		Questions:              []testutil.QuestionFixture{{Correct: "A", Marks: 5}, {Correct: "C", Marks: 5}},
	})

	assessmentRepo := repository.NewAssessmentRepository(db)
	attemptRepo := repository.NewStudentAssessmentRepository(db)
	ctrl := NewAssessmentController(
		service.NewUserAssessmentService(assessmentRepo, attemptRepo),
		service.NewAttemptService(db, assessmentRepo, repository.NewQuestionRepository(db), attemptRepo,
			repository.NewStudentAnswerRepository(db), nil, nil),
	)

	r := gin.New()
	g := r.Group("/student", middleware.AuthJWT(bearerUsers{"owner": owner, "other": other}))
	g.GET("/assessments/:id", ctrl.ShowAssessment)
	g.POST("/assessments/:id/start", ctrl.StartAttempt)
	g.GET("/assessments/:id/take", ctrl.TakeAttempt)
	g.POST("/assessments/:id/save-progress", ctrl.SaveProgress)
	g.POST("/assessments/:id/submit", ctrl.SubmitAttempt)
	api := attemptAPI{t: t, engine: r}
	base := fmt.Sprintf("/student/assessments/%d", assessment.ID)

	w := api.do(http.MethodGet, base, "owner", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(http.MethodPost, base+"/start", "owner", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var started dto.StartAttemptResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &started))
	assert.Equal(t, 10, started.TotalMarks)

	w = api.do(http.MethodPost, base+"/start", "owner", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodPost, base+"/save-progress", "owner", dto.SaveProgressRequest{
		AttemptID: started.AttemptID,
		Answers:   map[uint]*string{questions[0].ID: testutil.Ptr("A")},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(http.MethodGet, fmt.Sprintf("%s/take?attempt_id=%d", base, started.AttemptID), "owner", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var take dto.TakeAttemptResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &take))
	assert.Len(t, take.Questions, 2)
	assert.Equal(t, "A", take.SavedAnswers[questions[0].ID])
	assert.NotContains(t, w.Body.String(), "correct_answer")

	w = api.do(http.MethodGet, fmt.Sprintf("%s/take?attempt_id=%d", base, started.AttemptID), "other", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(http.MethodPost, base+"/submit", "other", dto.SubmitAttemptRequest{AttemptID: started.AttemptID})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(http.MethodPost, base+"/submit", "owner", dto.SubmitAttemptRequest{AttemptID: started.AttemptID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result dto.AttemptResultDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 5, result.ObtainedMarks)
	assert.InDelta(t, 50.0, result.Percentage, 1e-9)
	assert.Equal(t, model.PassStatusPass, result.PassStatus)

	w = api.do(http.MethodPost, base+"/submit", "owner", dto.SubmitAttemptRequest{AttemptID: started.AttemptID})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = api.do(http.MethodPost, base+"/start", "owner", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAttemptRequestValidation(t *testing.T) {
	r := gin.New()
	ctrl := NewAssessmentController(nil, nil)
	student := &model.User{ID: 1, Role: model.RoleStudent, IsApproved: true}
	g := r.Group("/student", middleware.AuthJWT(bearerUsers{"s": student}))
	g.GET("/assessments/:id/take", ctrl.TakeAttempt)
	g.POST("/assessments/:id/submit", ctrl.SubmitAttempt)
	api := attemptAPI{t: t, engine: r}

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/student/assessments/1/take", "s", nil).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/student/assessments/x/take?attempt_id=1", "s", nil).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/student/assessments/1/submit", "s", map[string]int{"time_taken": 5}).Code)
}
