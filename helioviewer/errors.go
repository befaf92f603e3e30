// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helioviewer

import "fmt"

// ServiceError is an error reported by a service in the "error" field
// of a response body.
type ServiceError struct {
	// Endpoint is the endpoint that reported the error.
	Endpoint string

	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Message is the error reported by the service, verbatim. Errors
	// that are not strings are given as their JSON text.
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("helioviewer: %s: service error: %s", e.Endpoint, e.Message)
}
