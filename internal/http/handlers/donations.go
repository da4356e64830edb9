package handlers

import (
	"net/http"

	"donation-api/internal/domain"
	"donation-api/internal/middleware"
)

const donationSaved = "Donation saved successfully"

type donationRequest struct {
	Name    text `json:"name"`
	Phone   text `json:"phone"`
	Purpose text `json:"purpose"`
	Message text `json:"message"`
}

// DonationsCreate stores the posted donation form. No field is required.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	var req donationRequest
	if status, err := decodeBody(w, r, &req); err != nil {
		a.error(w, status, err.Error())
		return
	}
	donation := domain.Donation{
		Name:    req.Name.ptr(),
		Phone:   req.Phone.ptr(),
		Purpose: req.Purpose.ptr(),
		Message: req.Message.ptr(),
		Country: middleware.CountryFromContext(r.Context()),
	}
	if err := a.Donations.Create(r.Context(), &donation); err != nil {
		a.Metrics.StoreFailed("create_donation")
		a.Logger.Error().Err(err).Str("request_id", middleware.RequestIDFromContext(r.Context())).Msg("save donation")
		a.error(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.Metrics.SubmissionStored(string(domain.SubmissionDonation))
	a.publish(r.Context(), domain.SubmissionEvent{
		Kind:     domain.SubmissionDonation,
		RecordID: donation.ID,
		Name:     domain.TextValue(donation.Name),
		Date:     donation.Date,
		Payload:  donation,
	})
	a.success(w, donationSaved)
}

// DonationsList returns every donation, newest first.
func (a *App) DonationsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.Donations.ListLatest(r.Context())
	if err != nil {
		a.Metrics.StoreFailed("list_donations")
		a.Logger.Error().Err(err).Str("request_id", middleware.RequestIDFromContext(r.Context())).Msg("list donations")
		a.error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if items == nil {
		items = []domain.Donation{}
	}
	a.json(w, http.StatusOK, items)
}
