package controllers

import (
	"context"
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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// listingCacheKey caches the full GET /inmuebles response. The endpoint
// takes no query parameters, so a single key is enough; every write path
// invalidates it.
const listingCacheKey = "inmuebles:all"

const listingCacheTTL = 10 * time.Minute

func CreateProperty(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var property models.Property
		if err := json.NewDecoder(r.Body).Decode(&property); err != nil {
			log.Printf("Invalid request body: %v", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		property.ID = primitive.NewObjectID()

		// Mongoose defaults array fields to [] on save; keep that shape so
		// fresh documents read back with empty sub-collections, not null.
		if property.Features == nil {
			property.Features = []string{}
		}
		if property.ImageIDs == nil {
			property.ImageIDs = []primitive.ObjectID{}
		}
		if property.Contracts == nil {
			property.Contracts = []models.Contract{}
		}
		if property.RentalRequests == nil {
			property.RentalRequests = []models.RentalRequest{}
		}
		if property.Reviews == nil {
			property.Reviews = []models.Review{}
		}

		if _, err := config.PropertyCollection.InsertOne(r.Context(), property); err != nil {
			log.Printf("Insert failed: %v", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		go invalidateListingCache(redisClient)

		writeJSON(w, http.StatusCreated, property)
	}
}

func GetAllProperties(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cached, err := redisClient.Get(r.Context(), listingCacheKey).Result()
		if err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
		if err != redis.Nil {
			log.Printf("Redis GET error for key %s: %v", listingCacheKey, err)
		}

		cursor, err := config.PropertyCollection.Find(r.Context(), bson.M{})
		if err != nil {
			log.Printf("Error fetching properties: %v", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer cursor.Close(r.Context())

		properties := []models.Property{}
		if err := cursor.All(r.Context(), &properties); err != nil {
			log.Printf("Error decoding properties: %v", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		resultBytes, err := json.Marshal(properties)
		if err != nil {
			log.Printf("Failed to serialize properties: %v", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		if err := redisClient.Set(r.Context(), listingCacheKey, resultBytes, listingCacheTTL).Err(); err != nil {
			log.Printf("Failed to cache response for key %s: %v", listingCacheKey, err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(resultBytes)
	}
}

func GetPropertyByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyID := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(propertyID)
		if err != nil {
			// A malformed id cannot match any document, so the lookup
			// answers not-found rather than a server error.
			log.Printf("Invalid property ID %s: %v", propertyID, err)
			writeError(w, http.StatusNotFound, "Inmueble no encontrado")
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

		writeJSON(w, http.StatusOK, property)
	}
}

func UpdateProperty(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyID := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(propertyID)
		if err != nil {
			log.Printf("Invalid property ID %s: %v", propertyID, err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		var updateData map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
			log.Printf("Invalid update data: %v", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		delete(updateData, "_id")
		delete(updateData, "id")

		var updated models.Property

		if len(updateData) == 0 {
			// Mongo rejects an empty $set; an empty body is a no-op read.
			err = config.PropertyCollection.FindOne(r.Context(), bson.M{"_id": objID}).Decode(&updated)
		} else {
			opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
			err = config.PropertyCollection.FindOneAndUpdate(
				r.Context(),
				bson.M{"_id": objID},
				bson.M{"$set": updateData},
				opts,
			).Decode(&updated)
		}

		if err == mongo.ErrNoDocuments {
			writeError(w, http.StatusNotFound, "Inmueble no encontrado")
			return
		}
		if err != nil {
			log.Printf("Update failed for property %s: %v", propertyID, err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		go invalidateListingCache(redisClient)

		writeJSON(w, http.StatusOK, updated)
	}
}

func DeleteProperty(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyID := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(propertyID)
		if err != nil {
			log.Printf("Invalid property ID %s: %v", propertyID, err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		// No existence check: deleting an absent id still answers with the
		// confirmation message. The deleted count is deliberately ignored.
		if _, err := config.PropertyCollection.DeleteOne(r.Context(), bson.M{"_id": objID}); err != nil {
			log.Printf("Delete failed for property %s: %v", propertyID, err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		go invalidateListingCache(redisClient)

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Inmueble eliminado"})
	}
}

func invalidateListingCache(redisClient *redis.Client) {
	if err := redisClient.Del(context.Background(), listingCacheKey).Err(); err != nil {
		log.Printf("Failed to invalidate listing cache: %v", err)
	}
}
