package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crowncut-ph/crowncut-api/internal/httperr"
	"github.com/crowncut-ph/crowncut-api/internal/middleware"
	"github.com/crowncut-ph/crowncut-api/internal/models"
)

type WalletHandler struct {
	db *gorm.DB
}

func NewWalletHandler(db *gorm.DB) *WalletHandler {
	return &WalletHandler{db: db}
}

// Get lazily creates the wallet for accounts that predate the signup
// credit.
func (h *WalletHandler) Get(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var wallet models.Wallet
	err := h.db.Where("user_id = ?", userID).First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		wallet = models.Wallet{
			UserID:     userID,
			BalancePHP: registrationBonusPHP,
		}
		err = h.db.Create(&wallet).Error
	}
	if err != nil {
		httperr.Internal(c, "failed_to_get_wallet", "Failed to get wallet.")
		return
	}

	c.JSON(200, wallet)
}
