package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/dailycheckin/middleware"
	"github.com/cppla/dailycheckin/services"
	"github.com/cppla/dailycheckin/utils"
)

// Ledger is the subset of the ledger service the controller needs.
type Ledger interface {
	GetLedger(ctx context.Context, userID string) ([]string, error)
	CheckIn(ctx context.Context, userID string) ([]string, error)
}

// CheckInController serves the read and append check-in endpoints.
type CheckInController struct {
	ledger Ledger
}

// NewCheckInController creates a new controller instance.
func NewCheckInController(ledger Ledger) *CheckInController {
	return &CheckInController{ledger: ledger}
}

// DatesResponse is returned by GET /api/checkin/:userId.
type DatesResponse struct {
	Dates []string `json:"dates"`
}

// CheckInResponse is returned by POST /api/checkin/:userId.
type CheckInResponse struct {
	Message string   `json:"message"`
	Dates   []string `json:"dates"`
}

// GetCheckIns returns the user's check-in dates. Unknown users get an empty list.
func (c *CheckInController) GetCheckIns(ctx *gin.Context) {
	userID := ctx.Param("userId")
	dates, err := c.ledger.GetLedger(ctx.Request.Context(), userID)
	if err != nil {
		c.fail(ctx, "GetCheckIns", userID, err)
		return
	}
	utils.Success(ctx, DatesResponse{Dates: dates})
}

// PostCheckIn records today for the user and returns the updated dates.
func (c *CheckInController) PostCheckIn(ctx *gin.Context) {
	userID := ctx.Param("userId")
	dates, err := c.ledger.CheckIn(ctx.Request.Context(), userID)
	if err != nil {
		c.fail(ctx, "PostCheckIn", userID, err)
		return
	}
	utils.Success(ctx, CheckInResponse{Message: "Checked in", Dates: dates})
}

func (c *CheckInController) fail(ctx *gin.Context, op, userID string, err error) {
	if errors.Is(err, services.ErrInvalidUserID) {
		utils.Error(ctx, http.StatusBadRequest, "Invalid user id")
		return
	}
	fields := []interface{}{
		"user_id", userID,
		"request_id", ctx.GetString(utils.RequestIDKey),
		"err", err,
	}
	if authUserID, exists := ctx.Get(middleware.ContextUserIDKey); exists {
		fields = append(fields, "auth_user_id", authUserID)
	}
	utils.Sugar.Errorw("Error in "+op, fields...)
	utils.Error(ctx, http.StatusInternalServerError, "Server error")
}
