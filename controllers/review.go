package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jortiz-dev/inmuebles_api/config"
	"github.com/jortiz-dev/inmuebles_api/models"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ReviewInput struct {
	TenantID primitive.ObjectID `json:"tenant_id"`
	Rating   float64            `json:"rating"`
	Comment  string             `json:"comment"`
}

func AddReview(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyID := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(propertyID)
		if err != nil {
			log.Printf("Invalid property ID %s: %v", propertyID, err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		var input ReviewInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			log.Printf("Invalid review body: %v", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		var property models.Property
		err = config.PropertyCollection.FindOne(r.Context(), bson.M{"_id": objID}).Decode(&property)
		if err == mongo.ErrNoDocuments {
			writeError(w, http.StatusNotFound, "Inmueble no encontrado")
			return
		}
		if err != nil {
			log.Printf("Error fetching property %s: %v", propertyID, err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		review := models.Review{
			TenantID: input.TenantID,
			Rating:   input.Rating,
			Comment:  input.Comment,
			Date:     time.Now(),
		}
		property.Reviews = append(property.Reviews, review)

		if _, err := config.PropertyCollection.ReplaceOne(r.Context(), bson.M{"_id": objID}, property); err != nil {
			log.Printf("Failed to save review for property %s: %v", propertyID, err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		go invalidateListingCache(redisClient)

		writeJSON(w, http.StatusCreated, property)
	}
}

func GetReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyID := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(propertyID)
		if err != nil {
			log.Printf("Invalid property ID %s: %v", propertyID, err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		var property models.Property
		err = config.PropertyCollection.FindOne(r.Context(), bson.M{"_id": objID}).Decode(&property)
		if err == mongo.ErrNoDocuments {
			writeError(w, http.StatusNotFound, "Inmueble no encontrado")
			return
		}
		if err != nil {
			log.Printf("Error fetching property %s: %v", propertyID, err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		reviews := property.Reviews
		if reviews == nil {
			reviews = []models.Review{}
		}

		writeJSON(w, http.StatusOK, reviews)
	}
}
