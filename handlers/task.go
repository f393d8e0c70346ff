package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ecemunal/taskora/models"
	"github.com/ecemunal/taskora/pkg"
	"github.com/ecemunal/taskora/services"
)

// TaskHandler, görev endpoint'lerini yöneten struct.
type TaskHandler struct {
	taskService services.TaskService
}

// NewTaskHandler, constructor.
func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Create godoc
// POST /api/tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.taskService.Create(r.Context(), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, task)
}

// List godoc
// GET /api/tasks?status=&priority=&dueFrom=&dueTo=&tag=&page=&pageSize=&sortBy=&sortOrder=
//
// Tüm query parametreleri opsiyoneldir; tanınmayan değerler 400 döner
// (sessizce yutulmaz — client yazım hatasını hemen görür).
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	filter, err := parseTaskFilter(r.URL.Query())
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.taskService.List(r.Context(), user.ID, filter)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, page)
}

// Get godoc
// GET /api/tasks/{id}
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	task, err := h.taskService.Get(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, task)
}

// Update godoc
// PATCH /api/tasks/{id}
// Body'de sadece değişen field'lar gönderilir (partial update).
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.taskService.Update(r.Context(), user.ID, r.PathValue("id"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, task)
}

// Delete godoc
// DELETE /api/tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := h.taskService.Delete(r.Context(), user.ID, r.PathValue("id")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.NoContent(w)
}

// parseTaskFilter, query string'i TaskFilter'a çevirir.
// Sayısal ve tarih parse hataları burada yakalanır; enum/allow-list
// kontrolleri filter.Normalize()'da yapılır.
func parseTaskFilter(q url.Values) (*models.TaskFilter, error) {
	filter := &models.TaskFilter{
		Status:    q.Get("status"),
		Priority:  q.Get("priority"),
		Tag:       q.Get("tag"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}

	var err error
	if filter.Page, err = parseIntParam(q, "page"); err != nil {
		return nil, err
	}
	if filter.PageSize, err = parseIntParam(q, "pageSize"); err != nil {
		return nil, err
	}
	if filter.DueFrom, err = parseTimeParam(q, "dueFrom"); err != nil {
		return nil, err
	}
	if filter.DueTo, err = parseTimeParam(q, "dueTo"); err != nil {
		return nil, err
	}

	return filter, nil
}

func parseIntParam(q url.Values, name string) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil // Normalize varsayılanı uygular
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &paramError{name: name, expected: "an integer"}
	}
	return value, nil
}

func parseTimeParam(q url.Values, name string) (*time.Time, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}

	value, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, &paramError{name: name, expected: "an RFC3339 timestamp"}
	}
	return &value, nil
}

type paramError struct {
	name     string
	expected string
}

func (e *paramError) Error() string {
	return e.name + " must be " + e.expected
}
