package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/orionte/placement-api/internal/infra/http/middleware"
	"github.com/orionte/placement-api/internal/usecase"
)

// maxProofSize caps payment proof uploads at 5MB.
const maxProofSize = 5 * 1024 * 1024

type PaymentHandler struct {
	Ledger     *usecase.LedgerUseCase
	Conversion *usecase.ConversionUseCase
	Store      usecase.FileStore
}

func NewPaymentHandler(ledger *usecase.LedgerUseCase, conversion *usecase.ConversionUseCase, store usecase.FileStore) *PaymentHandler {
	return &PaymentHandler{Ledger: ledger, Conversion: conversion, Store: store}
}

// saveProof stores an optional "proof" multipart file and returns its URL.
// Requests without a proof part return "" with no error.
func (h *PaymentHandler) saveProof(r *http.Request) (string, error) {
	file, header, err := r.FormFile("proof")
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()
	return h.Store.Save("payments", header.Filename, file)
}

// AcceptInitialPayment handles the combined Registration + Medical Check
// payment that converts a lead into a client. The body is multipart when a
// proof file accompanies the payment, plain JSON otherwise.
func (h *PaymentHandler) AcceptInitialPayment(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	var input usecase.AcceptInitialPaymentInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		r.Body = http.MaxBytesReader(w, r.Body, maxProofSize)
		if err := r.ParseMultipartForm(maxProofSize); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "proof file must not exceed 5MB"})
			return
		}
		leadID, _ := strconv.ParseInt(r.FormValue("leadId"), 10, 64)
		input.LeadID = leadID
		input.Method = r.FormValue("method")
		input.TransactionID = r.FormValue("transactionId")

		fileURL, err := h.saveProof(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read proof file"})
			return
		}
		input.FileURL = fileURL
	} else {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
			return
		}
	}

	output, err := h.Conversion.Execute(r.Context(), actor, input)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordConversion()
	middleware.RecordPayment(input.Method, output.Registration.Status)

	writeJSON(w, http.StatusCreated, output)
}

// RecordPayment registers a single per-service payment transaction.
func (h *PaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	var input usecase.RecordPaymentInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		r.Body = http.MaxBytesReader(w, r.Body, maxProofSize)
		if err := r.ParseMultipartForm(maxProofSize); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "proof file must not exceed 5MB"})
			return
		}
		leadID, _ := strconv.ParseInt(r.FormValue("leadId"), 10, 64)
		paidAmount, _ := strconv.ParseInt(r.FormValue("paidAmount"), 10, 64)
		input.LeadID = leadID
		input.Type = r.FormValue("type")
		input.PaidAmount = paidAmount
		input.Method = r.FormValue("method")
		input.TransactionID = r.FormValue("transactionId")

		fileURL, err := h.saveProof(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read proof file"})
			return
		}
		input.FileURL = fileURL
	} else {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
			return
		}
	}

	payment, err := h.Ledger.RecordPayment(r.Context(), actor, input)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordPayment(payment.Method, payment.Status)

	writeJSON(w, http.StatusCreated, payment)
}

// TotalPaid reports the cumulative paid amount for one (lead, service) pair.
func (h *PaymentHandler) TotalPaid(w http.ResponseWriter, r *http.Request) {
	leadID, err := strconv.ParseInt(r.URL.Query().Get("leadId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid lead id"})
		return
	}
	serviceType := r.URL.Query().Get("type")
	if serviceType == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "type is required"})
		return
	}

	total, err := h.Ledger.TotalPaid(r.Context(), leadID, serviceType)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"totalPaid": total})
}

// CheckTransactionID mirrors the pre-submission duplicate check the payment
// form runs: 200 for a usable id, 409 for a taken one.
func (h *PaymentHandler) CheckTransactionID(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	id := r.URL.Query().Get("transactionId")
	if err := h.Ledger.CheckTransactionID(r.Context(), actor, id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"available": true})
}

// IssueTransactionID hands out a fresh 14-digit transaction id.
func (h *PaymentHandler) IssueTransactionID(w http.ResponseWriter, r *http.Request) {
	id, err := h.Ledger.IssueTransactionID(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"transactionId": id})
}

// OutstandingBalance reports the live remainder for one (lead, service) pair.
func (h *PaymentHandler) OutstandingBalance(w http.ResponseWriter, r *http.Request) {
	leadID, err := strconv.ParseInt(r.URL.Query().Get("leadId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid lead id"})
		return
	}
	serviceType := r.URL.Query().Get("type")
	if serviceType == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "type is required"})
		return
	}

	balance, err := h.Ledger.OutstandingBalance(r.Context(), leadID, serviceType)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"balance": balance})
}
