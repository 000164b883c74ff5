package http

import (
	"errors"
	"net/http"

	"github.com/trailhead-app/trailhead/internal/logger"
	"github.com/trailhead-app/trailhead/internal/query"
	"github.com/trailhead-app/trailhead/internal/service"
	"github.com/trailhead-app/trailhead/internal/store"
	"github.com/trailhead-app/trailhead/internal/utils"
	"github.com/trailhead-app/trailhead/models"
)

// normalized is the classification attached to an error before rendering:
// the HTTP status and whether the error is operational, i.e. an expected
// request-level failure whose message is safe to show to the client.
type normalized struct {
	status      int
	operational bool
}

// errorStatusMap classifies every expected failure. Anything not in this
// table is treated as a programming or infrastructure fault: HTTP 500,
// non-operational, message masked in production.
var errorStatusMap = map[error]normalized{
	// malformed input
	ErrInvalidJSON:                 {http.StatusBadRequest, true},
	ErrInvalidResourceID:           {http.StatusBadRequest, true},
	ErrUnknownUpdateField:          {http.StatusBadRequest, true},
	ErrPasswordUpdateNotAllowed:    {http.StatusBadRequest, true},
	service.ErrInvalidDataProvided: {http.StatusBadRequest, true},
	service.ErrPasswordTooShort:    {http.StatusBadRequest, true},
	service.ErrPasswordsDoNotMatch: {http.StatusBadRequest, true},
	query.ErrInvalidQuery:          {http.StatusBadRequest, true},
	store.ErrInvalidValue:          {http.StatusBadRequest, true},

	// domain validation
	models.ErrTourNameRequired:      {http.StatusBadRequest, true},
	models.ErrTourDurationRequired:  {http.StatusBadRequest, true},
	models.ErrTourGroupSizeRequired: {http.StatusBadRequest, true},
	models.ErrTourPriceRequired:     {http.StatusBadRequest, true},
	models.ErrTourBadDifficulty:     {http.StatusBadRequest, true},
	models.ErrTourBadDiscount:       {http.StatusBadRequest, true},
	models.ErrReviewTextRequired:    {http.StatusBadRequest, true},
	models.ErrReviewBadRating:       {http.StatusBadRequest, true},
	models.ErrReviewTourRequired:    {http.StatusBadRequest, true},
	models.ErrReviewUserRequired:    {http.StatusBadRequest, true},
	models.ErrBookingTourRequired:   {http.StatusBadRequest, true},
	models.ErrBookingUserRequired:   {http.StatusBadRequest, true},
	models.ErrBookingPriceRequired:  {http.StatusBadRequest, true},
	models.ErrUnknownRole:           {http.StatusBadRequest, true},

	// uniqueness violations render as bad input, like any other
	// rejected field value
	store.ErrEmailAlreadyExists: {http.StatusBadRequest, true},
	store.ErrDuplicateValue:     {http.StatusBadRequest, true},

	// authentication
	ErrNotLoggedIn:                        {http.StatusUnauthorized, true},
	ErrInvalidAuthorizationHeader:         {http.StatusUnauthorized, true},
	ErrEmptyToken:                         {http.StatusUnauthorized, true},
	ErrUserNoLongerExists:                 {http.StatusUnauthorized, true},
	ErrStaleToken:                         {http.StatusUnauthorized, true},
	service.ErrWrongCredentials:           {http.StatusUnauthorized, true},
	service.ErrTokenIsExpired:             {http.StatusUnauthorized, true},
	service.ErrTokenIsExpiredOrInvalid:    {http.StatusUnauthorized, true},
	service.ErrInvalidOrExpiredResetToken: {http.StatusBadRequest, true},

	// authorization
	ErrForbidden: {http.StatusForbidden, true},

	// missing resources
	store.ErrNotFound:       {http.StatusNotFound, true},
	store.ErrNoUserWasFound: {http.StatusNotFound, true},

	// infrastructure
	service.ErrTokenCreationFailed: {http.StatusInternalServerError, false},
	service.ErrResetMailNotSent:    {http.StatusInternalServerError, false},
	store.ErrBuildingSQLQuery:      {http.StatusInternalServerError, false},
	store.ErrExecutingQuery:        {http.StatusInternalServerError, false},
	store.ErrScanningRow:           {http.StatusInternalServerError, false},
	store.ErrScanningRows:          {http.StatusInternalServerError, false},
}

func normalize(err error) normalized {
	for target, n := range errorStatusMap {
		if errors.Is(err, target) {
			return n
		}
	}
	return normalized{status: http.StatusInternalServerError, operational: false}
}

// writeError renders err as a JSON failure envelope.
//
// Operational errors carry their own message to the client. Non-operational
// ones are logged at error level and, in production mode, masked behind a
// generic message; development mode additionally attaches the raw error text
// so the cause is visible without reading server logs.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	n := normalize(err)

	label := models.StatusFail
	if n.status >= http.StatusInternalServerError {
		label = models.StatusError
	}

	resp := models.ErrorResponse{
		Status:  label,
		Message: err.Error(),
	}

	if n.operational {
		log.Warn().Err(err).Int("status", n.status).Msg("request failed")
	} else {
		log.Error().Err(err).Int("status", n.status).Msg("unexpected error")
		if h.cfg.App.IsProduction() {
			resp.Message = "something went wrong"
		} else {
			resp.Detail = err.Error()
			resp.Message = "something went wrong"
		}
	}

	utils.WriteJSON(w, resp, n.status)
}
