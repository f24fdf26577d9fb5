// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

/*
Package models defines the data structures shared by the Maplegend pipeline.

Data flows one way through these types:

  - Point: one row of the uploaded spreadsheet with valid coordinates
  - RankedOrganization: one row of the ranked table (or the overflow bucket)
  - City: one row of the city reference table
  - RenderOptions: the immutable per-render configuration record
  - Document: one exported HTML map

None of the types carry behavior beyond small helpers; the stages that
produce and consume them live in the ranking, points, cities, mapview and
generator packages.
*/
package models
