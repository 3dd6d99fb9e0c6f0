package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/calorie-calculator/internal/apperror"
	"github.com/sakif/calorie-calculator/internal/calendar"
	"github.com/sakif/calorie-calculator/internal/model"
	"github.com/sakif/calorie-calculator/internal/service"
	"github.com/sakif/calorie-calculator/internal/validation"
)

// maxBodyBytes caps request bodies. Every body here is a line of text or a
// number.
const maxBodyBytes = 1 << 16

// Calculator is the part of service.Calculator the API needs.
type Calculator interface {
	State() service.State
	LoadDay(ctx context.Context, date time.Time) error
	AddEntry(ctx context.Context, raw string) (*service.PendingDecision, error)
	AddAnyway(ctx context.Context) error
	ReplaceExisting(ctx context.Context) error
	CancelPending()
	DeleteEntry(ctx context.Context, id string) error
	EditEntry(ctx context.Context, id, raw string) (model.FoodEntry, error)
	SetGoal(ctx context.Context, target int, date time.Time) error
	DeleteGoal(ctx context.Context) error
}

var _ Calculator = (*service.Calculator)(nil)

// CalculatorHandler serves the JSON API over one calculator.
type CalculatorHandler struct {
	calc   Calculator
	cal    calendar.Calendar
	lang   validation.Lang
	now    func() time.Time
	logger *slog.Logger
}

func NewCalculatorHandler(calc Calculator, cal calendar.Calendar, lang validation.Lang, logger *slog.Logger) *CalculatorHandler {
	return &CalculatorHandler{
		calc:   calc,
		cal:    cal,
		lang:   lang,
		now:    time.Now,
		logger: logger,
	}
}

// Routes registers the API under r.
//
//	GET    /day                      → day view (?date=YYYY-MM-DD)
//	POST   /entries                  → add from text
//	POST   /entries/pending/add-anyway
//	POST   /entries/pending/replace
//	DELETE /entries/pending
//	PUT    /entries/{id}             → edit from text
//	DELETE /entries/{id}
//	PUT    /goal                     → set today's or the given day's goal
//	DELETE /goal
func (h *CalculatorHandler) Routes(r chi.Router) {
	r.Get("/day", h.HandleDay)
	r.Post("/entries", h.HandleAdd)
	r.Post("/entries/pending/add-anyway", h.HandleAddAnyway)
	r.Post("/entries/pending/replace", h.HandleReplace)
	r.Delete("/entries/pending", h.HandleCancelPending)
	r.Put("/entries/{id}", h.HandleEdit)
	r.Delete("/entries/{id}", h.HandleDelete)
	r.Put("/goal", h.HandleSetGoal)
	r.Delete("/goal", h.HandleDeleteGoal)
}

// DayView is a state snapshot plus the values derived from it.
type DayView struct {
	Day               string                   `json:"day"`
	Entries           []model.FoodEntry        `json:"entries"`
	Goal              *model.CalorieGoal       `json:"goal,omitempty"`
	Pending           *service.PendingDecision `json:"pending,omitempty"`
	TotalCalories     int                      `json:"totalCalories"`
	RemainingCalories int                      `json:"remainingCalories"`
	GoalProgress      float64                  `json:"goalProgress"`
	IsGoalExceeded    bool                     `json:"isGoalExceeded"`
	HasGoal           bool                     `json:"hasGoal"`
	IsEmpty           bool                     `json:"isEmpty"`
}

func (h *CalculatorHandler) view() DayView {
	return NewDayView(h.calc.State(), h.cal)
}

// NewDayView builds the view of st, formatting the day with cal. The CLI
// prints the same shape with --json.
func NewDayView(st service.State, cal calendar.Calendar) DayView {
	return DayView{
		Day:               cal.FormatDay(st.Day),
		Entries:           st.Entries,
		Goal:              st.Goal,
		Pending:           st.Pending,
		TotalCalories:     st.TotalCalories(),
		RemainingCalories: st.RemainingCalories(),
		GoalProgress:      st.GoalProgress(),
		IsGoalExceeded:    st.IsGoalExceeded(),
		HasGoal:           st.HasGoal(),
		IsEmpty:           st.IsEmpty(),
	}
}

type textRequest struct {
	Text string `json:"text"`
}

type goalRequest struct {
	Target int    `json:"target"`
	Date   string `json:"date"`
}

// decode reads a JSON body into dst. It writes the 400 itself and reports
// whether decoding worked.
func (h *CalculatorHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.Warn("invalid JSON body", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "Invalid JSON body"), h.lang)
		return false
	}
	return true
}

// HandleDay returns the day view.
//
// HTTP: GET /api/day?date=2026-10-14
//
// With a date the day is loaded first. Without one the day already in view
// is returned, loading today if nothing was loaded yet.
func (h *CalculatorHandler) HandleDay(w http.ResponseWriter, r *http.Request) {
	var day time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := h.cal.ParseDay(raw)
		if err != nil {
			writeError(w, apperror.InvalidDate(), h.lang)
			return
		}
		day = parsed
	} else if h.calc.State().Day.IsZero() {
		day = h.now()
	}

	if !day.IsZero() {
		if err := h.calc.LoadDay(r.Context(), day); err != nil {
			writeError(w, err, h.lang)
			return
		}
	}
	writeJSON(w, http.StatusOK, h.view())
}

// HandleAdd logs one entry from free text.
//
// HTTP: POST /api/entries
// REQUEST BODY: {"text": "Grilled Chicken 165"}
//
// A name already logged for the day answers 409 with the pending decision;
// nothing is written until add-anyway or replace is called.
func (h *CalculatorHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !h.decode(w, r, &req) {
		return
	}

	pending, err := h.calc.AddEntry(r.Context(), req.Text)
	if err != nil {
		writeError(w, err, h.lang)
		return
	}
	if pending != nil {
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Error:   "duplicate",
			Message: pending.Message,
			Pending: pending,
		})
		return
	}
	writeJSON(w, http.StatusCreated, h.view())
}

// HandleAddAnyway resolves a pending duplicate by adding it as well.
func (h *CalculatorHandler) HandleAddAnyway(w http.ResponseWriter, r *http.Request) {
	if err := h.calc.AddAnyway(r.Context()); err != nil {
		writeError(w, err, h.lang)
		return
	}
	writeJSON(w, http.StatusCreated, h.view())
}

// HandleReplace resolves a pending duplicate by replacing the old entry.
func (h *CalculatorHandler) HandleReplace(w http.ResponseWriter, r *http.Request) {
	if err := h.calc.ReplaceExisting(r.Context()); err != nil {
		writeError(w, err, h.lang)
		return
	}
	writeJSON(w, http.StatusOK, h.view())
}

func (h *CalculatorHandler) HandleCancelPending(w http.ResponseWriter, r *http.Request) {
	h.calc.CancelPending()
	w.WriteHeader(http.StatusNoContent)
}

// HandleEdit re-parses an entry's text.
//
// HTTP: PUT /api/entries/{id}
// REQUEST BODY: {"text": "Pear 60"}
func (h *CalculatorHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req textRequest
	if !h.decode(w, r, &req) {
		return
	}

	entry, err := h.calc.EditEntry(r.Context(), id, req.Text)
	if err != nil {
		writeError(w, err, h.lang)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// HandleDelete removes an entry.
//
// HTTP: DELETE /api/entries/{id}
func (h *CalculatorHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.calc.DeleteEntry(r.Context(), id); err != nil {
		writeError(w, err, h.lang)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSetGoal sets the goal for a day.
//
// HTTP: PUT /api/goal
// REQUEST BODY: {"target": 2000, "date": "2026-10-14"}
//
// Without a date the goal goes to the day in view, or today.
func (h *CalculatorHandler) HandleSetGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if !h.decode(w, r, &req) {
		return
	}

	date := h.calc.State().Day
	if req.Date != "" {
		parsed, err := h.cal.ParseDay(req.Date)
		if err != nil {
			writeError(w, apperror.InvalidDate(), h.lang)
			return
		}
		date = parsed
	}
	if date.IsZero() {
		date = h.now()
	}

	if err := h.calc.SetGoal(r.Context(), req.Target, date); err != nil {
		writeError(w, err, h.lang)
		return
	}
	writeJSON(w, http.StatusOK, h.view())
}

// HandleDeleteGoal clears the goal in view. Without one it still answers 204.
func (h *CalculatorHandler) HandleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := h.calc.DeleteGoal(r.Context()); err != nil {
		writeError(w, err, h.lang)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
