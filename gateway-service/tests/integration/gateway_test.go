//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"focusmap/gateway-service/internal/app/gateway/entity"
	"focusmap/gateway-service/internal/app/gateway/handler"
	"focusmap/gateway-service/internal/app/gateway/infrastructure/grpcclient"
	"focusmap/gateway-service/internal/app/gateway/infrastructure/soapclient"
	"focusmap/gateway-service/internal/app/gateway/repository"
	"focusmap/gateway-service/internal/app/gateway/repository/mocks"
	"focusmap/gateway-service/internal/app/gateway/server"
	"focusmap/gateway-service/internal/app/gateway/service"
	"focusmap/gateway-service/internal/app/gateway/transport/grpcserver"
	"focusmap/gateway-service/internal/app/gateway/transport/soapserver"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const jwtSecret = "integration-secret"

// GatewayIntegrationTestSuite поднимает gRPC, SOAP и REST в одном процессе поверх реальной MongoDB
type GatewayIntegrationTestSuite struct {
	suite.Suite
	client        *mongo.Client
	db            *mongo.Database
	lifecycle     *server.Lifecycle
	ratingClient  *grpcclient.RatingClient
	rest          *httptest.Server
	kafkaProducer *mocks.MockMessagePublisher
	userID        primitive.ObjectID
}

func TestGatewayIntegrationSuite(t *testing.T) {
	suite.Run(t, new(GatewayIntegrationTestSuite))
}

func (s *GatewayIntegrationTestSuite) SetupSuite() {
	mongoURI := getEnv("TEST_MONGODB_URI", "mongodb://localhost:27017")
	dbName := getEnv("TEST_MONGODB_DATABASE", "focusmap_test_db")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	s.client, err = mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	s.Require().NoError(err)
	s.Require().NoError(s.client.Ping(ctx, nil))

	s.db = s.client.Database(dbName)
	s.Require().NoError(s.db.Drop(ctx))

	workspaceRepo := repository.NewWorkspaceRepository(s.db)
	s.kafkaProducer = &mocks.MockMessagePublisher{}
	ratingService := service.NewRatingService(workspaceRepo, repository.NewRatingRepository(s.db))
	commentService := service.NewCommentService(workspaceRepo, repository.NewCommentRepository(s.db), s.kafkaProducer)

	grpcListener := server.NewGRPCListener("grpc", "127.0.0.1:0",
		grpcserver.NewGRPCServer(grpcserver.NewServer(ratingService), false))
	soapListener := server.NewHTTPListener("soap", "127.0.0.1:0",
		soapserver.NewRouter(soapserver.DefaultPath, soapserver.NewServer(commentService)))

	s.lifecycle = server.NewLifecycle(grpcListener, soapListener)
	s.Require().NoError(s.lifecycle.Start())

	s.ratingClient, err = grpcclient.NewRatingClient(grpcclient.Config{
		Address:      grpcListener.Addr().String(),
		Timeout:      5 * time.Second,
		MaxRetries:   1,
		RetryBackoff: 50 * time.Millisecond,
	})
	s.Require().NoError(err)

	commentClient := soapclient.NewCommentClient(soapclient.Config{
		URL:     "http://" + soapListener.Addr().String() + soapserver.DefaultPath,
		Timeout: 5 * time.Second,
	})

	gin.SetMode(gin.TestMode)
	router := handler.SetupRoutes(
		handler.RouterConfig{},
		handler.NewRatingHandler(s.ratingClient),
		handler.NewCommentHandler(commentClient),
		handler.NewHealthCheckHandler("gateway-service", handler.HealthCheck{
			Name:  "mongodb",
			Check: func(ctx context.Context) error { return s.client.Ping(ctx, nil) },
		}),
		handler.NewAuthMiddleware(jwtSecret),
	)
	s.rest = httptest.NewServer(router)
	s.userID = primitive.NewObjectID()
}

func (s *GatewayIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	for _, name := range []string{"workspaces", "ratings", "comments"} {
		_, err := s.db.Collection(name).DeleteMany(ctx, primitive.M{})
		s.Require().NoError(err)
	}
	s.kafkaProducer.Messages = nil
	s.kafkaProducer.ExpectedCalls = nil
	s.kafkaProducer.Calls = nil
}

func (s *GatewayIntegrationTestSuite) TearDownSuite() {
	if s.rest != nil {
		s.rest.Close()
	}
	if s.ratingClient != nil {
		s.ratingClient.Close()
	}
	if s.lifecycle != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.lifecycle.Shutdown(ctx)
	}
	if s.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.db.Drop(ctx)
		s.client.Disconnect(ctx)
	}
}

func (s *GatewayIntegrationTestSuite) insertWorkspace(category entity.WorkspaceType) primitive.ObjectID {
	ws := entity.Workspace{ID: primitive.NewObjectID(), Name: "Test " + string(category), Type: category}
	_, err := s.db.Collection("workspaces").InsertOne(context.Background(), ws)
	s.Require().NoError(err)
	return ws.ID
}

func (s *GatewayIntegrationTestSuite) insertRating(workspaceID primitive.ObjectID, categories entity.RatingCategories) {
	rating := entity.Rating{
		WorkspaceID: workspaceID,
		UserID:      primitive.NewObjectID(),
		Categories:  categories,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	_, err := s.db.Collection("ratings").InsertOne(context.Background(), rating)
	s.Require().NoError(err)
}

func (s *GatewayIntegrationTestSuite) token() string {
	claims := handler.JWTClaims{
		UserID: s.userID.Hex(),
		Email:  "user@focusmap.test",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
	s.Require().NoError(err)
	return signed
}

func (s *GatewayIntegrationTestSuite) get(path string) *http.Response {
	resp, err := http.Get(s.rest.URL + path)
	s.Require().NoError(err)
	return resp
}

func score(v float64) *float64 {
	return &v
}

func (s *GatewayIntegrationTestSuite) TestAverageRatings_CafeScenario() {
	workspaceID := s.insertWorkspace(entity.WorkspaceTypeCafe)
	s.insertRating(workspaceID, entity.RatingCategories{Wifi: 4, Quiet: 3, Power: 5, Cleanliness: 4, Taste: score(5)})
	s.insertRating(workspaceID, entity.RatingCategories{Wifi: 5, Quiet: 4, Power: 4, Cleanliness: 5, Taste: score(4)})
	s.insertRating(workspaceID, entity.RatingCategories{Wifi: 2, Quiet: 5, Power: 3, Cleanliness: 3, Taste: score(3)})

	resp := s.get("/api/workspaces/" + workspaceID.Hex() + "/ratings/average?type=cafe")
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var body map[string]float64
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.InDelta(11.0/3.0, body["wifi"], 1e-9)
	s.InDelta(4.0, body["quiet"], 1e-9)
	s.InDelta(4.0, body["power"], 1e-9)
	s.InDelta(4.0, body["cleanliness"], 1e-9)
	s.InDelta(4.0, body["taste"], 1e-9)
	s.Zero(body["resources"])
	s.Zero(body["computers"])
	s.Equal(3.0, body["totalRatings"])
}

func (s *GatewayIntegrationTestSuite) TestAverageRatings_NoRatings() {
	workspaceID := s.insertWorkspace(entity.WorkspaceTypeLibrary)

	resp, err := s.ratingClient.CalculateAverageRatings(context.Background(), workspaceID.Hex(), "")

	s.Require().NoError(err)
	s.Zero(resp.GetWifi())
	s.Zero(resp.GetTotalRatings())
}

func (s *GatewayIntegrationTestSuite) TestAverageRatings_UnknownWorkspace() {
	resp := s.get("/api/workspaces/" + primitive.NewObjectID().Hex() + "/ratings/average")
	defer resp.Body.Close()

	s.Equal(http.StatusInternalServerError, resp.StatusCode)

	var body entity.ErrorResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Contains(body.Details, "workspace not found")
}

func (s *GatewayIntegrationTestSuite) TestComments_EmptyList() {
	workspaceID := s.insertWorkspace(entity.WorkspaceTypeCafe)

	resp := s.get("/api/workspaces/" + workspaceID.Hex() + "/comments")
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var body entity.CommentListResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.NotNil(body.Comments)
	s.Empty(body.Comments)
	s.Zero(body.Total)
}

func (s *GatewayIntegrationTestSuite) TestComments_AddThenListNewestFirst() {
	s.kafkaProducer.On("PublishMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	workspaceID := s.insertWorkspace(entity.WorkspaceTypeLibrary)

	for _, text := range []string{"Quiet on weekdays", "Fast wifi near the windows"} {
		body, _ := json.Marshal(entity.CreateCommentRequest{Text: text})
		req, _ := http.NewRequest(http.MethodPost, s.rest.URL+"/api/workspaces/"+workspaceID.Hex()+"/comments", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+s.token())

		resp, err := http.DefaultClient.Do(req)
		s.Require().NoError(err)
		resp.Body.Close()
		s.Require().Equal(http.StatusCreated, resp.StatusCode)
		time.Sleep(10 * time.Millisecond)
	}

	resp := s.get("/api/workspaces/" + workspaceID.Hex() + "/comments")
	defer resp.Body.Close()

	var list entity.CommentListResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&list))
	s.Require().Len(list.Comments, 2)
	s.Equal("Fast wifi near the windows", list.Comments[0].Content)
	s.Equal(s.userID.Hex(), list.Comments[0].UserID)
	s.Len(s.kafkaProducer.Messages, 2)
}

func (s *GatewayIntegrationTestSuite) TestComments_AddUnknownWorkspace() {
	body, _ := json.Marshal(entity.CreateCommentRequest{Text: "Nobody will read this"})
	req, _ := http.NewRequest(http.MethodPost, s.rest.URL+"/api/workspaces/"+primitive.NewObjectID().Hex()+"/comments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token())

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusInternalServerError, resp.StatusCode)
	s.kafkaProducer.AssertNotCalled(s.T(), "PublishMessage", mock.Anything, mock.Anything, mock.Anything)
}

func (s *GatewayIntegrationTestSuite) TestHealth() {
	resp := s.get("/health")
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
