package api

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/rgehrsitz/rpfire/internal/calculation"
	"github.com/rgehrsitz/rpfire/internal/config"
	"github.com/rgehrsitz/rpfire/internal/output"
)

// ShowForm renders the input form prefilled with the example input.
// GET /
func (h *Handler) ShowForm(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, http.StatusOK, output.HTMLPage{
		ShowForm: true,
		Action:   "/",
		Fields:   formFields(config.FormValues(config.ExampleInput())),
	})
}

// SubmitForm runs the projection for a posted form and renders the results under it.
// POST /
func (h *Handler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		h.renderPage(w, http.StatusBadRequest, output.HTMLPage{
			ShowForm: true,
			Action:   "/",
			Fields:   formFields(nil),
			Error:    "Invalid form submission",
		})
		return
	}

	values := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		values[key] = r.PostForm.Get(key)
	}
	page := output.HTMLPage{
		ShowForm: true,
		Action:   "/",
		Fields:   formFields(values),
	}

	input, err := h.parser.ParseForm(values)
	if err != nil {
		page.Error = err.Error()
		h.renderPage(w, http.StatusBadRequest, page)
		return
	}

	result, err := h.engine.RunSimulation(r.Context(), *input)
	if err != nil {
		status := http.StatusInternalServerError
		page.Error = "calculation failed"
		if errors.Is(err, calculation.ErrInversion) {
			status = http.StatusUnprocessableEntity
			page.Error = err.Error()
		} else {
			h.log.WithError(err).Error("form calculation failed")
		}
		h.renderPage(w, status, page)
		return
	}
	page.Result = result
	h.renderPage(w, http.StatusOK, page)
}

func (h *Handler) renderPage(w http.ResponseWriter, status int, page output.HTMLPage) {
	var buf bytes.Buffer
	if err := output.RenderHTMLPage(&buf, page); err != nil {
		h.log.WithError(err).Error("failed to render page")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func formFields(values map[string]string) []output.HTMLField {
	fields := config.FormFields()
	out := make([]output.HTMLField, 0, len(fields))
	for _, f := range fields {
		out = append(out, output.HTMLField{Key: f.Key, Label: f.Label, Value: values[f.Key]})
	}
	return out
}
