package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dmaia/clipstream/internal/common"
	"github.com/dmaia/clipstream/internal/server/models"
	"github.com/dmaia/clipstream/internal/server/services"
)

// Machine-readable error codes carried in the error envelope.
const (
	codeInvalidInput       = "INVALID_INPUT"
	codeEmailTaken         = "EMAIL_TAKEN"
	codeInvalidCredentials = "INVALID_CREDENTIALS"
	codeUnauthenticated    = "UNAUTHENTICATED"
	codeNotFound           = "NOT_FOUND"
	codeRateLimited        = "RATE_LIMITED"
	codeInternal           = "INTERNAL"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type resultEnvelope struct {
	Result any `json:"result"`
}

func respondResult(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resultEnvelope{Result: v})
}

func respondError(w http.ResponseWriter, code, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

// respondServiceError translates a service-layer error into the error
// envelope. Validation messages pass through so the caller learns which
// field was rejected; everything else gets a fixed message.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		respondError(w, codeInvalidInput, err.Error(), http.StatusBadRequest)
	case errors.Is(err, common.ErrorAlreadyExists):
		respondError(w, codeEmailTaken, "email already registered", http.StatusConflict)
	case errors.Is(err, common.ErrorInvalidCredentials):
		respondError(w, codeInvalidCredentials, "invalid email or password", http.StatusUnauthorized)
	case errors.Is(err, common.ErrorNotFound):
		respondError(w, codeNotFound, "not found", http.StatusNotFound)
	default:
		respondError(w, codeInternal, "internal error", http.StatusInternalServerError)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, codeInvalidInput, "malformed request body", http.StatusBadRequest)
		return false
	}
	return true
}

type userPayload struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type authPayload struct {
	User  userPayload `json:"user"`
	Token string      `json:"token"`
}

type videoPayload struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	URL          string          `json:"url"`
	ThumbnailURL string          `json:"thumbnailUrl"`
	Status       string          `json:"status"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type shortPayload struct {
	ID          int64           `json:"id"`
	VideoID     int64           `json:"videoId"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func toAuthPayload(res *services.AuthResult) authPayload {
	return authPayload{
		User: userPayload{
			ID:        res.User.ID,
			Email:     res.User.Email,
			Name:      res.User.Name,
			CreatedAt: res.User.CreatedAt,
		},
		Token: res.Token,
	}
}

func toVideoPayload(v *models.Video) videoPayload {
	return videoPayload{
		ID:           v.ID,
		Title:        v.Title,
		Description:  v.Description,
		URL:          v.URL,
		ThumbnailURL: v.ThumbnailURL,
		Status:       v.Status,
		Metadata:     v.Metadata,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func toShortPayload(s *models.Short) shortPayload {
	return shortPayload{
		ID:          s.ID,
		VideoID:     s.VideoID,
		Title:       s.Title,
		Description: s.Description,
		Status:      s.Status,
		Metadata:    s.Metadata,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// --- auth ---

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		s.metrics.RecordSignUp("invalid_input")
		return
	}

	res, err := s.users.SignUp(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			s.metrics.RecordSignUp("invalid_input")
		case errors.Is(err, common.ErrorAlreadyExists):
			s.metrics.RecordSignUp("email_taken")
		default:
			s.metrics.RecordSignUp("error")
		}
		respondServiceError(w, err)
		return
	}

	s.metrics.RecordSignUp("success")
	respondResult(w, toAuthPayload(res), http.StatusCreated)
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		s.metrics.RecordSignIn("invalid_input")
		return
	}

	res, err := s.users.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			s.metrics.RecordSignIn("invalid_credentials")
		} else {
			s.metrics.RecordSignIn("error")
		}
		respondServiceError(w, err)
		return
	}

	s.metrics.RecordSignIn("success")
	respondResult(w, toAuthPayload(res), http.StatusOK)
}

// handleMe answers from the verified token alone, no database round trip.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		respondError(w, codeUnauthenticated, "authentication required", http.StatusUnauthorized)
		return
	}

	respondResult(w, map[string]any{
		"user": map[string]any{"id": id.UserID, "email": id.Email},
	}, http.StatusOK)
}

// --- videos ---

func (s *Server) handleCreateVideo(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		respondError(w, codeUnauthenticated, "authentication required", http.StatusUnauthorized)
		return
	}

	var req struct {
		Title        string          `json:"title"`
		Description  string          `json:"description"`
		URL          string          `json:"url"`
		ThumbnailURL string          `json:"thumbnailUrl"`
		Metadata     json.RawMessage `json:"metadata"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	video, err := s.media.CreateVideo(r.Context(), id.UserID, services.CreateVideoInput{
		Title:        req.Title,
		Description:  req.Description,
		URL:          req.URL,
		ThumbnailURL: req.ThumbnailURL,
		Metadata:     req.Metadata,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondResult(w, toVideoPayload(video), http.StatusCreated)
}

func (s *Server) handleListVideos(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		respondError(w, codeUnauthenticated, "authentication required", http.StatusUnauthorized)
		return
	}

	videos, err := s.media.ListVideos(r.Context(), id.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	payload := make([]videoPayload, 0, len(videos))
	for _, v := range videos {
		payload = append(payload, toVideoPayload(v))
	}
	respondResult(w, payload, http.StatusOK)
}

func (s *Server) handleGetVideo(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		respondError(w, codeUnauthenticated, "authentication required", http.StatusUnauthorized)
		return
	}

	videoID, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil || videoID <= 0 {
		respondError(w, codeInvalidInput, "id must be a positive integer", http.StatusBadRequest)
		return
	}

	video, err := s.media.GetVideo(r.Context(), id.UserID, videoID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondResult(w, toVideoPayload(video), http.StatusOK)
}

func (s *Server) handleRequestUpload(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		respondError(w, codeUnauthenticated, "authentication required", http.StatusUnauthorized)
		return
	}

	ticket, err := s.media.RequestUpload(r.Context(), id.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondResult(w, map[string]string{
		"key":       ticket.Key,
		"uploadUrl": ticket.UploadURL,
	}, http.StatusOK)
}

// --- shorts ---

func (s *Server) handleCreateShort(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		respondError(w, codeUnauthenticated, "authentication required", http.StatusUnauthorized)
		return
	}

	var req struct {
		VideoID     int64           `json:"videoId"`
		Title       string          `json:"title"`
		Description string          `json:"description"`
		Metadata    json.RawMessage `json:"metadata"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	short, err := s.media.CreateShort(r.Context(), id.UserID, services.CreateShortInput{
		VideoID:     req.VideoID,
		Title:       req.Title,
		Description: req.Description,
		Metadata:    req.Metadata,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondResult(w, toShortPayload(short), http.StatusCreated)
}

func (s *Server) handleListShorts(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		respondError(w, codeUnauthenticated, "authentication required", http.StatusUnauthorized)
		return
	}

	var videoID int64
	if raw := r.URL.Query().Get("videoId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			respondError(w, codeInvalidInput, "videoId must be a positive integer", http.StatusBadRequest)
			return
		}
		videoID = parsed
	}

	shorts, err := s.media.ListShorts(r.Context(), id.UserID, videoID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	payload := make([]shortPayload, 0, len(shorts))
	for _, sh := range shorts {
		payload = append(payload, toShortPayload(sh))
	}
	respondResult(w, payload, http.StatusOK)
}

// --- health ---

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		respondError(w, codeInternal, "database unreachable", http.StatusServiceUnavailable)
		return
	}
	respondResult(w, map[string]string{"status": "ok"}, http.StatusOK)
}
