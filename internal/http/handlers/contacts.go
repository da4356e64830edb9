package handlers

import (
	"net/http"

	"donation-api/internal/domain"
	"donation-api/internal/middleware"
)

const contactSaved = "Message sent successfully"

type contactRequest struct {
	Name    text `json:"name"`
	Email   text `json:"email"`
	Message text `json:"message"`
}

func (a *App) ContactsCreate(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if status, err := decodeBody(w, r, &req); err != nil {
		a.error(w, status, err.Error())
		return
	}
	contact := domain.Contact{
		Name:    req.Name.ptr(),
		Email:   req.Email.ptr(),
		Message: req.Message.ptr(),
		Country: middleware.CountryFromContext(r.Context()),
	}
	if err := a.Contacts.Create(r.Context(), &contact); err != nil {
		a.Metrics.StoreFailed("create_contact")
		a.Logger.Error().Err(err).Str("request_id", middleware.RequestIDFromContext(r.Context())).Msg("save contact")
		a.error(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.Metrics.SubmissionStored(string(domain.SubmissionContact))
	a.publish(r.Context(), domain.SubmissionEvent{
		Kind:     domain.SubmissionContact,
		RecordID: contact.ID,
		Name:     domain.TextValue(contact.Name),
		Date:     contact.Date,
		Payload:  contact,
	})
	a.success(w, contactSaved)
}

func (a *App) ContactsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.Contacts.ListLatest(r.Context())
	if err != nil {
		a.Metrics.StoreFailed("list_contacts")
		a.Logger.Error().Err(err).Str("request_id", middleware.RequestIDFromContext(r.Context())).Msg("list contacts")
		a.error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if items == nil {
		items = []domain.Contact{}
	}
	a.json(w, http.StatusOK, items)
}
