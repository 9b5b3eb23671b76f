package handlers

import (
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultLimit = 50

// pagination reads the limit and page query params and translates them into
// mongo limit/skip values
func pagination(r *http.Request) (limit int64, skip int64) {
	l, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || l <= 0 {
		l = defaultLimit
	}
	p, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || p < 0 {
		p = 0
	}
	return int64(l), int64(p * l)
}

func findOptions(limit, skip int64) *options.FindOptions {
	return &options.FindOptions{Limit: &limit, Skip: &skip}
}
