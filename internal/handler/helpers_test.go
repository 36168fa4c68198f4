package handler

import (
	"net/http"
	"net/http/httptest"
	"strconv"

	"github.com/osse101/MineIdler_Go/internal/middleware"
)

const testPlayerID = int64(42)

// asPlayer runs h behind the identity middleware as testPlayerID
func asPlayer(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	req.Header.Set(middleware.HeaderPlayerID, strconv.FormatInt(testPlayerID, 10))
	rec := httptest.NewRecorder()
	middleware.Identity(h).ServeHTTP(rec, req)
	return rec
}
