package httpapi

import (
	"fmt"
	"io"
	"net/http"

	"github.com/languagesphere/server/internal/server/models"
	"github.com/languagesphere/server/internal/webutil"
)

type verifyPaymentRequest struct {
	PaymentID string `json:"paymentId"`
	Option    string `json:"option"`
}

type verifyPaymentResponse struct {
	Message  string          `json:"message"`
	Payments models.Payments `json:"payments"`
}

type pdfURLResponse struct {
	PDFURL    string `json:"pdfUrl"`
	ExpiresIn int    `json:"expiresIn"`
}

func (s *Server) handleVerifyPayment(w http.ResponseWriter, r *http.Request) error {
	userID, _ := UserIDFromContext(r.Context())

	var req verifyPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	payments, err := s.payments.Verify(r.Context(), userID, req.Option, req.PaymentID)
	if err != nil {
		return apiError(err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, verifyPaymentResponse{
		Message:  "Payment verified successfully",
		Payments: payments,
	})
	return nil
}

func (s *Server) handlePaymentStatus(w http.ResponseWriter, r *http.Request) error {
	userID, _ := UserIDFromContext(r.Context())

	payments, err := s.payments.Status(r.Context(), userID)
	if err != nil {
		return apiError(err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]models.Payments{"payments": payments})
	return nil
}

func (s *Server) handlePDFURL(w http.ResponseWriter, r *http.Request) error {
	userID, _ := UserIDFromContext(r.Context())

	url, expiresIn, err := s.books.ResolveURL(r.Context(), userID)
	if err != nil {
		return apiError(err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, pdfURLResponse{PDFURL: url, ExpiresIn: expiresIn})
	return nil
}

// handlePDF streams the book PDF. Once the copy starts the status line is
// out, so a mid-stream failure (usually the client going away) can only be
// logged, not reported.
func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) error {
	userID, _ := UserIDFromContext(r.Context())

	pdf, name, err := s.books.Open(r.Context(), userID)
	if err != nil {
		return apiError(err)
	}
	defer pdf.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name))
	w.Header().Set("Cache-Control", "private, max-age=3600")

	if _, err := io.Copy(w, pdf); err != nil {
		return fmt.Errorf("streaming pdf: %w", err)
	}
	return nil
}
