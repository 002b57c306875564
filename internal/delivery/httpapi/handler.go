package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// Handler serves the JSON API used by the browser front-end.
type Handler struct {
	quiz   QuizService
	scores ScoreService
	logger *zap.Logger
	now    func() time.Time
}

// NewHandler creates a new Handler.
func NewHandler(quiz QuizService, scores ScoreService, logger *zap.Logger) *Handler {
	return &Handler{
		quiz:   quiz,
		scores: scores,
		logger: logger,
		now:    time.Now,
	}
}

// Router registers the API routes. Static files are served from webDir when it is set.
func (h *Handler) Router(webDir string) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/sheets", h.listSheets).Methods(http.MethodGet)
	api.HandleFunc("/sheets/{sheet}/lessons", h.listLessons).Methods(http.MethodGet)
	api.HandleFunc("/quizzes", h.startQuiz).Methods(http.MethodPost)
	api.HandleFunc("/quizzes/{id}", h.getQuiz).Methods(http.MethodGet)
	api.HandleFunc("/quizzes/{id}/answer", h.answer).Methods(http.MethodPost)
	api.HandleFunc("/quizzes/{id}/advance", h.advance).Methods(http.MethodPost)
	api.HandleFunc("/quizzes/{id}/restart", h.restart).Methods(http.MethodPost)
	api.HandleFunc("/scores/{user}", h.lastScore).Methods(http.MethodGet)

	if webDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(webDir)))
	}

	return r
}

func (h *Handler) listSheets(w http.ResponseWriter, r *http.Request) {
	names := h.quiz.Sheets(r.Context())

	sheets := make([]sheetView, 0, len(names))
	for _, name := range names {
		lessons, err := h.quiz.Lessons(r.Context(), name)
		if err != nil {
			h.fail(w, err)
			return
		}
		sheets = append(sheets, sheetView{Name: name, Lessons: lessons})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"sheets":  sheets,
	})
}

func (h *Handler) listLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.quiz.Lessons(r.Context(), mux.Vars(r)["sheet"])
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"lessons": lessons,
	})
}

func (h *Handler) startQuiz(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	mode, err := entities.ParseMode(req.Mode)
	if err != nil {
		h.fail(w, err)
		return
	}

	session, info, err := h.quiz.Start(r.Context(), entities.QuizParams{
		UserName:  req.User,
		Sheet:     req.Sheet,
		Lesson:    req.Lesson,
		Mode:      mode,
		Count:     int(req.Count),
		NoRepeat:  req.NoRepeat,
		RangeFrom: int(req.RangeFrom),
		RangeTo:   int(req.RangeTo),
	})
	if err != nil {
		h.fail(w, err)
		return
	}

	view := newSessionView(session, h.now())
	if warn := info.Warning(); warn != nil {
		view.Warning = warn.Error()
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *Handler) getQuiz(w http.ResponseWriter, r *http.Request) {
	session, err := h.quiz.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(session, h.now()))
}

func (h *Handler) answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	var (
		session  *entities.QuizSession
		accepted bool
		err      error
	)
	id := mux.Vars(r)["id"]
	if req.Question != nil {
		current, err := h.quiz.Get(r.Context(), id)
		if err != nil {
			h.fail(w, err)
			return
		}
		if *req.Question != current.Index {
			view := newSessionView(current, h.now())
			view.Accepted = &accepted
			writeJSON(w, http.StatusOK, view)
			return
		}
	}

	if req.Option != nil {
		session, accepted, err = h.quiz.AnswerOption(r.Context(), id, *req.Option)
	} else {
		session, accepted, err = h.quiz.Answer(r.Context(), id, req.Answer)
	}
	if err != nil {
		h.fail(w, err)
		return
	}

	view := newSessionView(session, h.now())
	view.Accepted = &accepted
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) advance(w http.ResponseWriter, r *http.Request) {
	session, _, err := h.quiz.Advance(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(session, h.now()))
}

func (h *Handler) restart(w http.ResponseWriter, r *http.Request) {
	session, info, err := h.quiz.Restart(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, err)
		return
	}

	view := newSessionView(session, h.now())
	if warn := info.Warning(); warn != nil {
		view.Warning = warn.Error()
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *Handler) lastScore(w http.ResponseWriter, r *http.Request) {
	rec, err := h.scores.LastScore(r.Context(), mux.Vars(r)["user"])
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scoreView{Success: true, Score: rec})
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}
