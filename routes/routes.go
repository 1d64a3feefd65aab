package routes

import (
	"github.com/gorilla/mux"
	"github.com/jortiz-dev/inmuebles_api/controllers"
	"github.com/redis/go-redis/v9"
)

func Routes(router *mux.Router, redisClient *redis.Client) {
	// Property routes
	router.HandleFunc("/inmuebles", controllers.CreateProperty(redisClient)).Methods("POST")
	router.HandleFunc("/inmuebles", controllers.GetAllProperties(redisClient)).Methods("GET")
	router.HandleFunc("/inmuebles/{id}", controllers.GetPropertyByID()).Methods("GET")
	router.HandleFunc("/inmuebles/{id}", controllers.UpdateProperty(redisClient)).Methods("PUT")
	router.HandleFunc("/inmuebles/{id}", controllers.DeleteProperty(redisClient)).Methods("DELETE")

	// Image routes
	router.HandleFunc("/inmuebles/{id}/imagenes", controllers.UploadImages(redisClient)).Methods("POST")
	router.HandleFunc("/imagenes/{id}", controllers.GetImage()).Methods("GET")

	// Rental request routes
	router.HandleFunc("/inmuebles/{id}/solicitudes_renta", controllers.AddRentalRequest(redisClient)).Methods("POST")
	router.HandleFunc("/inmuebles/{id}/solicitudes_renta", controllers.GetRentalRequests()).Methods("GET")

	// Review routes
	router.HandleFunc("/inmuebles/{id}/resenas", controllers.AddReview(redisClient)).Methods("POST")
	router.HandleFunc("/inmuebles/{id}/resenas", controllers.GetReviews()).Methods("GET")
}
