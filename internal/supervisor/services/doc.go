// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

/*
Package services adapts Maplegend components to suture's Serve pattern.

HTTPServerService wraps *http.Server: ListenAndServe runs until the context
is canceled, then an optional drain hook runs and Shutdown drains
connections within the configured timeout.

CityRefreshService reloads the city reference table on a fixed interval.
Failures are logged and retried on the next tick; the previous table stays
in use.

Every wrapper implements fmt.Stringer so supervisor events name the service.
*/
package services
