package pkg

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// APIResponse, tüm endpoint'lerin döndüğü standart envelope.
// Başarıda data, hatada error dolu olur — client her zaman aynı şekli görür.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JSON, başarılı yanıt gönderir.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := APIResponse{
		Success: true,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// NoContent, body'siz 204 yanıtı gönderir — silme ve logout için.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error, domain error'ı HTTP yanıtına çevirir.
//
// Bilinmeyen error'lar (hiçbir sentinel'e eşleşmeyen) 500 olarak döner
// ama mesajları client'a SIZDIRILMAZ — server tarafında loglanır,
// client generic bir mesaj görür. SQL hatası gibi iç detaylar
// API yüzeyine çıkmamalı.
func Error(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("[response] internal error: %v", err)
		message = "internal server error"
	}

	writeError(w, status, message)
}

// ErrorWithMessage, belirli status ve mesajla hata yanıtı gönderir.
// Handler'ların parse/validation hataları gibi domain error'a sarmaya
// değmeyecek durumları için.
func ErrorWithMessage(w http.ResponseWriter, status int, message string) {
	writeError(w, status, message)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := APIResponse{
		Success: false,
		Error:   message,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode error response", http.StatusInternalServerError)
	}
}

// mapErrorToStatus, sentinel error'ları HTTP status code'a eşler.
// errors.Is sayesinde wrap edilmiş error'lar da doğru eşleşir.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
