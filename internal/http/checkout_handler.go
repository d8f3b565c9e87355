package http

import (
	"net/http"

	d "github.com/kakairsyad/Interior-market/internal/domain"
)

func (s *Server) GetCheckout(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, sess.Checkout().View())
}

// SubmitCheckout accepts the form and answers 202 while the order is being
// processed. Poll GET /checkout for the outcome.
func (s *Server) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	var form d.CheckoutForm
	if !decodeJSON(w, r, s.opts.MaxRequestBodySize, &form) {
		return
	}

	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	flow, err := sess.Submit(r.Context(), form)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusAccepted, flow.View())
}
