package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"healthdash/internal/telemetry/metrics"
	"healthdash/internal/telemetry/tracing"
	"healthdash/pkg"
)

type notesRepo interface {
	List(ctx context.Context) ([]Note, error)
	Add(ctx context.Context, note Note) (Note, error)
	Update(ctx context.Context, note Note) error
	Delete(ctx context.Context, id int) error
}

type Handler struct {
	repo    notesRepo
	metrics *metrics.Manager
}

func NewHandler(repo notesRepo, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metrics,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.notes.add")
	defer span.End()

	if err := r.ParseForm(); err != nil {
		log.Errorf("add new note failed, parse form error: %s", err)
		http.Error(w, "parse form error", http.StatusInternalServerError)
		return
	}

	title := r.Form.Get("title")
	if title == "" {
		http.Error(w, "error, title empty", http.StatusBadRequest)
		return
	}
	content := r.Form.Get("content")
	if content == "" {
		http.Error(w, "error, content empty", http.StatusBadRequest)
		return
	}

	note := Note{
		Date:    pkg.Today(),
		Title:   title,
		Content: content,
	}

	addedNote, err := handler.repo.Add(ctx, note)
	if err != nil {
		log.Errorf("failed to add new note [%s]: %s", note.Title, err)
		http.Error(w, "error, failed to add new note", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterNotes.Inc()

	log.Debugf("new note added: [%s] [%s]: %d", addedNote.Title, addedNote.Date, addedNote.Id)
	pkg.WriteResponse(w, pkg.ContentType.Text, fmt.Sprintf("added:%d", addedNote.Id), http.StatusCreated)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "PUT, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.notes.update")
	defer span.End()

	if err := r.ParseForm(); err != nil {
		log.Errorf("update note failed, parse form error: %s", err)
		http.Error(w, "parse form error", http.StatusInternalServerError)
		return
	}

	title := r.Form.Get("title")
	if title == "" {
		http.Error(w, "error, title empty", http.StatusBadRequest)
		return
	}
	content := r.Form.Get("content")
	if content == "" {
		http.Error(w, "error, content empty", http.StatusBadRequest)
		return
	}
	idStr := r.Form.Get("id")
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id invalid", http.StatusBadRequest)
		return
	}

	// the original date is kept on update
	note := Note{
		Id:      id,
		Title:   title,
		Content: content,
	}

	if err := handler.repo.Update(ctx, note); err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			http.Error(w, "error, note not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update note [%d], [%s]: %s", note.Id, note.Title, err)
		http.Error(w, "error, failed to update note", http.StatusInternalServerError)
		return
	}

	log.Debugf("note updated: [%s]: %d", note.Title, note.Id)
	pkg.WriteTextResponseOK(w, fmt.Sprintf("updated:%d", note.Id))
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.notes.delete")
	defer span.End()

	vars := mux.Vars(r)

	idStr := vars["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			http.Error(w, "error, note not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete note %d: %s", id, err)
		http.Error(w, "error, note not deleted, internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, fmt.Sprintf("deleted:%d", id))
}

// HandleList returns all notes, or only those matching the q query
// parameter.
func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.notes.list")
	defer span.End()

	notes, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list notes error: %s", err)
		http.Error(w, "failed to get notes", http.StatusInternalServerError)
		return
	}

	notes = Filter(notes, r.URL.Query().Get("q"))
	if len(notes) == 0 {
		notes = []Note{}
	}

	notesJson, err := json.Marshal(notes)
	if err != nil {
		log.Errorf("marshal notes error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resJson := fmt.Sprintf(`{"notes": %s, "total": %d}`, notesJson, len(notes))
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, []byte(resJson))
}
