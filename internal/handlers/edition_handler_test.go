// internal/handlers/edition_handler_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/glasshouse/editions-backend/internal/models"
	"github.com/glasshouse/editions-backend/internal/services"
)

const (
	testBuyer     = "0x00000000000000000000000000000000000000b2"
	testReferrer  = "0x00000000000000000000000000000000000000c3"
	testRecipient = "0x00000000000000000000000000000000000000d4"
)

const testPrice = uint64(150000000000000000)

type EditionHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine

	caller string // injected as the authenticated address
}

func (suite *EditionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)
	suite.Require().NoError(db.AutoMigrate(
		&models.Edition{},
		&models.Token{},
		&models.Account{},
		&models.LedgerEvent{},
	))
	suite.db = db

	sequencer := services.NewSequencer()
	eventService := services.NewEventService(db)
	accountService := services.NewAccountService(db)
	editionService := services.NewEditionService(db, sequencer, eventService)
	tokenService := services.NewTokenService(db, sequencer)
	purchaseService := services.NewPurchaseService(db, sequencer, editionService, tokenService, accountService, eventService)

	editionHandler := NewEditionHandler(editionService, purchaseService)
	tokenHandler := NewTokenHandler(tokenService)

	suite.caller = testBuyer
	suite.router = gin.New()
	suite.router.Use(func(c *gin.Context) {
		c.Set("address", suite.caller)
		c.Next()
	})

	v1 := suite.router.Group("/v1")
	v1.POST("/editions", editionHandler.CreateEdition)
	v1.GET("/editions/:id", editionHandler.GetEdition)
	v1.POST("/editions/:id/purchase", editionHandler.BuyEdition)
	v1.GET("/tokens/:id", tokenHandler.GetToken)
	v1.GET("/tokens/:id/uri", tokenHandler.GetTokenURI)
	v1.POST("/tokens/:id/transfer", tokenHandler.Transfer)
}

func (suite *EditionHandlerTestSuite) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *EditionHandlerTestSuite) createEdition() {
	w := suite.request("POST", "/v1/editions", map[string]interface{}{
		"quantity":          10,
		"price":             testPrice,
		"commission":        testPrice,
		"funding_recipient": testRecipient,
		"token_uri":         "https://example.com/metadata.json",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
}

func (suite *EditionHandlerTestSuite) TestCreateAndGetEdition() {
	suite.createEdition()

	w := suite.request("GET", "/v1/editions/0", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(suite.T(), response["success"].(bool))

	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), float64(0), data["edition_id"])
	assert.Equal(suite.T(), float64(10), data["quantity"])
}

func (suite *EditionHandlerTestSuite) TestGetUnknownEditionIs404() {
	w := suite.request("GET", "/v1/editions/42", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *EditionHandlerTestSuite) TestCreateEditionRejectsBadCommission() {
	w := suite.request("POST", "/v1/editions", map[string]interface{}{
		"quantity":          10,
		"price":             1000,
		"commission":        1001,
		"funding_recipient": testRecipient,
		"token_uri":         "https://example.com/metadata.json",
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *EditionHandlerTestSuite) TestPurchaseFlow() {
	suite.createEdition()

	w := suite.request("POST", "/v1/editions/0/purchase", map[string]interface{}{
		"referrer": testReferrer,
		"payment":  testPrice,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	// The first unit is token 0, owned by the caller.
	w = suite.request("GET", "/v1/tokens/0", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), testBuyer, data["owner"])

	// Token metadata resolves through the edition.
	w = suite.request("GET", "/v1/tokens/0/uri", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *EditionHandlerTestSuite) TestPurchaseWrongPaymentIs400() {
	suite.createEdition()

	w := suite.request("POST", "/v1/editions/0/purchase", map[string]interface{}{
		"referrer": testReferrer,
		"payment":  testPrice - 1,
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *EditionHandlerTestSuite) TestPurchaseSoldOutIs409() {
	w := suite.request("POST", "/v1/editions", map[string]interface{}{
		"quantity":          1,
		"price":             testPrice,
		"commission":        0,
		"funding_recipient": testRecipient,
		"token_uri":         "https://example.com/metadata.json",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	body := map[string]interface{}{"referrer": testReferrer, "payment": testPrice}

	w = suite.request("POST", "/v1/editions/0/purchase", body)
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.request("POST", "/v1/editions/0/purchase", body)
	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *EditionHandlerTestSuite) TestUnsoldTokenURIIs404() {
	suite.createEdition()

	w := suite.request("GET", "/v1/tokens/0/uri", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *EditionHandlerTestSuite) TestTransferByNonOwnerIs403() {
	suite.createEdition()

	w := suite.request("POST", "/v1/editions/0/purchase", map[string]interface{}{
		"referrer": testReferrer,
		"payment":  testPrice,
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	// A different caller claims to move the buyer's token.
	suite.caller = testReferrer
	w = suite.request("POST", "/v1/tokens/0/transfer", map[string]interface{}{
		"from": testBuyer,
		"to":   testReferrer,
	})
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func TestEditionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(EditionHandlerTestSuite))
}
