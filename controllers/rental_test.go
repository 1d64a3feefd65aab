package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/jortiz-dev/inmuebles_api/config"
	"github.com/jortiz-dev/inmuebles_api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestAddRentalRequest(t *testing.T) {
	mt := mtest.New(t, mockOptions())

	mt.Run("appends with a server-set request date", func(mt *mtest.T) {
		config.PropertyCollection = mt.Coll
		ns := mt.DB.Name() + "." + mt.Coll.Name()

		objID := primitive.NewObjectID()
		tenantID := primitive.NewObjectID()

		findResponse := mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: objID},
			{Key: "location", Value: "Col. Centro 12"},
			{Key: "rental_requests", Value: bson.A{}},
		})
		replaceResponse := mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		)
		mt.AddMockResponses(findResponse, replaceResponse)

		router := mux.NewRouter()
		router.HandleFunc("/inmuebles/{id}/solicitudes_renta", AddRentalRequest(newTestRedis())).Methods("POST")

		before := time.Now()
		body := []byte(`{"tenant_id": "` + tenantID.Hex() + `", "status": "pendiente"}`)
		req := httptest.NewRequest(http.MethodPost, "/inmuebles/"+objID.Hex()+"/solicitudes_renta", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(mt.T, http.StatusCreated, rec.Code)

		var property models.Property
		require.NoError(mt.T, json.Unmarshal(rec.Body.Bytes(), &property))
		require.Len(mt.T, property.RentalRequests, 1)

		request := property.RentalRequests[0]
		assert.Equal(mt.T, tenantID, request.TenantID)
		assert.Equal(mt.T, "pendiente", request.Status)
		assert.False(mt.T, request.RequestDate.Before(before))
	})

	mt.Run("answers 404 when the property is absent", func(mt *mtest.T) {
		config.PropertyCollection = mt.Coll
		ns := mt.DB.Name() + "." + mt.Coll.Name()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		router := mux.NewRouter()
		router.HandleFunc("/inmuebles/{id}/solicitudes_renta", AddRentalRequest(newTestRedis())).Methods("POST")

		body := []byte(`{"tenant_id": "` + primitive.NewObjectID().Hex() + `", "status": "pendiente"}`)
		req := httptest.NewRequest(http.MethodPost, "/inmuebles/"+primitive.NewObjectID().Hex()+"/solicitudes_renta", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(mt.T, http.StatusNotFound, rec.Code)
	})
}

func TestGetRentalRequests(t *testing.T) {
	mt := mtest.New(t, mockOptions())

	mt.Run("lists requests in insertion order", func(mt *mtest.T) {
		config.PropertyCollection = mt.Coll
		ns := mt.DB.Name() + "." + mt.Coll.Name()

		objID := primitive.NewObjectID()
		firstTenant := primitive.NewObjectID()
		secondTenant := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: objID},
			{Key: "rental_requests", Value: bson.A{
				bson.D{
					{Key: "tenant_id", Value: firstTenant},
					{Key: "request_date", Value: primitive.NewDateTimeFromTime(time.Now().Add(-time.Hour))},
					{Key: "status", Value: "rechazado"},
				},
				bson.D{
					{Key: "tenant_id", Value: secondTenant},
					{Key: "request_date", Value: primitive.NewDateTimeFromTime(time.Now())},
					{Key: "status", Value: "pendiente"},
				},
			}},
		}))

		router := mux.NewRouter()
		router.HandleFunc("/inmuebles/{id}/solicitudes_renta", GetRentalRequests()).Methods("GET")

		req := httptest.NewRequest(http.MethodGet, "/inmuebles/"+objID.Hex()+"/solicitudes_renta", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(mt.T, http.StatusOK, rec.Code)

		var requests []models.RentalRequest
		require.NoError(mt.T, json.Unmarshal(rec.Body.Bytes(), &requests))
		require.Len(mt.T, requests, 2)
		assert.Equal(mt.T, firstTenant, requests[0].TenantID)
		assert.Equal(mt.T, "rechazado", requests[0].Status)
		assert.Equal(mt.T, secondTenant, requests[1].TenantID)
		assert.Equal(mt.T, "pendiente", requests[1].Status)
	})

	mt.Run("answers 404 when the property is absent", func(mt *mtest.T) {
		config.PropertyCollection = mt.Coll
		ns := mt.DB.Name() + "." + mt.Coll.Name()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		router := mux.NewRouter()
		router.HandleFunc("/inmuebles/{id}/solicitudes_renta", GetRentalRequests()).Methods("GET")

		req := httptest.NewRequest(http.MethodGet, "/inmuebles/"+primitive.NewObjectID().Hex()+"/solicitudes_renta", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(mt.T, http.StatusNotFound, rec.Code)
	})
}
