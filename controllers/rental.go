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

type RentalRequestInput struct {
	TenantID primitive.ObjectID `json:"tenant_id"`
	Status   string             `json:"status"`
}

func AddRentalRequest(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyID := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(propertyID)
		if err != nil {
			log.Printf("Invalid property ID %s: %v", propertyID, err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		var input RentalRequestInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			log.Printf("Invalid rental request body: %v", err)
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

		request := models.RentalRequest{
			TenantID:    input.TenantID,
			RequestDate: time.Now(),
			Status:      input.Status,
		}
		property.RentalRequests = append(property.RentalRequests, request)

		// Whole-document replace, matching the original read-modify-write
		// persistence. Concurrent appends to the same property can lose an
		// update; that weak consistency is part of the contract.
		if _, err := config.PropertyCollection.ReplaceOne(r.Context(), bson.M{"_id": objID}, property); err != nil {
			log.Printf("Failed to save rental request for property %s: %v", propertyID, err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		go invalidateListingCache(redisClient)

		writeJSON(w, http.StatusCreated, property)
	}
}

func GetRentalRequests() http.HandlerFunc {
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

		requests := property.RentalRequests
		if requests == nil {
			requests = []models.RentalRequest{}
		}

		writeJSON(w, http.StatusOK, requests)
	}
}
