package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the FoodCash API. Order food, earn cashback, invite friends.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create an account
- POST "/auth/login" - Log in
- POST "/auth/logout" - Log out

USER
- GET "/user" - Current user
- PUT "/user" - Edit profile
- PUT "/user/referral" - Enter the code of the friend who invited you
- POST "/user/avatar" - Upload a profile picture

CART
- GET "/cart" - Current cart with subtotal, delivery fee and total
- POST "/cart/items" - Add an item
- PATCH "/cart/items/:itemId" - Change quantity (0 removes)
- DELETE "/cart/items/:itemId" - Remove an item
- DELETE "/cart" - Empty the cart

ORDERS
- POST "/orders" - Check out the cart
- GET "/orders" - Order history

CASHBACK
- GET "/cashback/summary" - Balance, earned and withdrawn totals
- GET "/cashback/transactions?filter=all|earnings|withdrawals" - History
- POST "/withdrawals" - Withdraw from the balance to a saved payment method
- GET "/referrals/:code/chain" - Referral pyramid

PAYMENT METHODS
- GET "/payment-methods" - Saved cards and wallets
- POST "/payment-methods" - Add a card, PayPal, Apple Pay or Google Pay
- PUT "/payment-methods/:id/default" - Make a method the default
- DELETE "/payment-methods/:id" - Remove a method

ADDRESSES
- GET "/addresses" - Saved delivery addresses
- POST "/addresses" - Add an address
- PUT "/addresses/:id/default" - Make an address the default
- DELETE "/addresses/:id" - Remove an address`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
