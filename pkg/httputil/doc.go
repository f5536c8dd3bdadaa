// Package httputil provides the JSON plumbing shared by the gridplace HTTP
// handlers.
//
// # Requests
//
// [DecodeJSON] reads a size-limited request body into a value and rejects
// unknown fields and trailing data:
//
//	var req PlaceRequest
//	if err := httputil.DecodeJSON(w, r, &req, httputil.MaxBodyBytes); err != nil {
//	    httputil.WriteError(w, err)
//	    return
//	}
//
// # Responses
//
// [WriteJSON] encodes a value with the given status. [WriteError] maps a
// structured error (package errors) to a status code and writes
//
//	{"code": "INVALID_DIRECTIVE", "message": "position 3 already taken by element 1"}
//
// Caller input errors become 400, cancelled requests 499 and everything else
// 500 with code INTERNAL_ERROR.
package httputil
