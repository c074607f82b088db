package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("user"))
	bloggerMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("blogger"))
	advertiserMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("advertiser"))

	mux := pat.New()

	// Responses
	mux.Post("/responses", bloggerMiddleware.ThenFunc(app.responseHandler.CreateResponse))
	mux.Get("/responses/listing/:id", advertiserMiddleware.ThenFunc(app.responseHandler.GetResponsesForListing))
	mux.Get("/responses/my/sent", bloggerMiddleware.ThenFunc(app.responseHandler.GetMySentResponses))
	mux.Get("/responses/my/received", advertiserMiddleware.ThenFunc(app.responseHandler.GetMyReceivedResponses))
	mux.Post("/responses/:id/review", advertiserMiddleware.ThenFunc(app.responseHandler.ReviewResponse))
	mux.Post("/responses/:id/withdraw", bloggerMiddleware.ThenFunc(app.responseHandler.WithdrawResponse))

	// Offers
	mux.Post("/offers", advertiserMiddleware.ThenFunc(app.offerHandler.CreateOffer))
	mux.Get("/offers/my", authMiddleware.ThenFunc(app.offerHandler.GetMyOffers))
	mux.Get("/offers/:id", authMiddleware.ThenFunc(app.offerHandler.GetOfferByID))
	mux.Post("/offers/:id/respond", bloggerMiddleware.ThenFunc(app.offerHandler.RespondToOffer))

	// Chat
	mux.Post("/chat/messages", authMiddleware.ThenFunc(app.chatHandler.SendMessage))
	mux.Get("/chat/messages/:responseId", authMiddleware.ThenFunc(app.chatHandler.GetMessages))
	mux.Post("/chat/messages/:id/read", authMiddleware.ThenFunc(app.chatHandler.MarkMessageRead))
	mux.Get("/chat/unread-count", authMiddleware.ThenFunc(app.chatHandler.GetUnreadCount))
	mux.Get("/chat/list", authMiddleware.ThenFunc(app.chatHandler.GetChatList))

	// токен передаётся query-параметром, заголовки из браузера не прокинуть
	mux.Get("/ws", standardMiddleware.ThenFunc(app.WebSocketHandler))

	return standardMiddleware.Then(mux)
}
