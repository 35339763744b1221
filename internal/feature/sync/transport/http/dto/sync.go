// Package dto defines data transfer objects for the synchronization
// HTTP API.
package dto

// SyncRequest is the body of a synchronization run request. Date
// defaults to today and Portfolio to every tracked symbol.
type SyncRequest struct {
	Date      string `json:"date,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}
