package api

import (
	"github.com/Domenick1991/itemshare/internal/service/bookings"
	"github.com/Domenick1991/itemshare/internal/service/items"
	"github.com/Domenick1991/itemshare/internal/service/requests"
	"github.com/Domenick1991/itemshare/internal/service/users"
	"github.com/gin-gonic/gin"
)

func NewRouter(
	userSvc users.UserUseCase,
	itemSvc items.ItemUseCase,
	requestSvc requests.RequestUseCase,
	bookingSvc bookings.BookingUseCase,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	NewUserHandler(userSvc).Register(router.Group("/users"))
	NewItemHandler(itemSvc).Register(router.Group("/items"))
	NewRequestHandler(requestSvc).Register(router.Group("/requests"))
	NewBookingHandler(bookingSvc).Register(router.Group("/bookings"))

	return router
}
