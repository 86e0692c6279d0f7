package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Kariqs/foodcash-api/backend"
	"github.com/Kariqs/foodcash-api/models"
	"github.com/Kariqs/foodcash-api/utils"
	"github.com/gin-gonic/gin"
)

func parseFilter(raw string) (models.TransactionFilter, bool) {
	switch f := models.TransactionFilter(raw); f {
	case "":
		return models.FilterAll, true
	case models.FilterAll, models.FilterEarnings, models.FilterWithdrawals:
		return f, true
	default:
		return "", false
	}
}

// GetTransactions lists the cashback history, newest first.
func GetTransactions(env *Env) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		filter, ok := parseFilter(ctx.Query("filter"))
		if !ok {
			sendErrorResponse(ctx, http.StatusBadRequest, "filter must be one of all, earnings, withdrawals")
			return
		}
		ledger, err := env.App.Ledger(ctx.Request.Context())
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"filter":       filter,
			"transactions": newTransactionViews(ledger.Transactions(filter)),
		})
	}
}

func GetCashbackSummary(env *Env) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ledger, err := env.App.Ledger(ctx.Request.Context())
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendJSONResponse(ctx, http.StatusOK, totalsView(ledger.Totals()))
	}
}

func Withdraw(env *Env) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var data models.WithdrawData
		if err := ctx.ShouldBindJSON(&data); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidAmount)
			return
		}
		tx, err := env.App.Withdraw(ctx.Request.Context(), data.Amount, data.Method)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		ledger, err := env.App.Ledger(ctx.Request.Context())
		if err != nil {
			sendStoreError(ctx, err)
			return
		}

		if user, ok := env.App.Session.User(); ok {
			err := env.Mailer.SendEmail(user.Email, "Withdrawal confirmed", "withdrawal", utils.EmailData{
				Name:    user.FullName,
				Message: "Your cashback withdrawal is on its way.",
				Amount:  utils.FormatCurrency(tx.Amount),
			})
			if err != nil {
				log.Println("Error sending withdrawal email:", err)
			}
		}

		body := totalsView(ledger.Totals())
		body["message"] = utils.FormatCurrency(tx.Amount) + " withdrawn"
		body["transaction"] = newTransactionViews([]models.CashbackTransaction{tx})[0]
		sendJSONResponse(ctx, http.StatusCreated, body)
	}
}

// GetReferralChain returns the three-level payout pyramid for a referral code.
func GetReferralChain(env *Env) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		levels, err := env.App.ReferralChain(ctx.Request.Context(), ctx.Param("code"))
		if errors.Is(err, backend.ErrUserNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgReferrerNotFound)
			return
		}
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"chain": levels})
	}
}
