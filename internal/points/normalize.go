// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

package points

import "strings"

// legalForms abbreviates Russian legal-entity forms. Longer forms come first
// so ПУБЛИЧНОЕ АКЦИОНЕРНОЕ ОБЩЕСТВО is not shortened to ПУБЛИЧНОЕ АО.
var legalForms = strings.NewReplacer(
	"ОБЩЕСТВО С ОГРАНИЧЕННОЙ ОТВЕТСТВЕННОСТЬЮ", "ООО",
	"ПУБЛИЧНОЕ АКЦИОНЕРНОЕ ОБЩЕСТВО", "ПАО",
	"ОТКРЫТОЕ АКЦИОНЕРНОЕ ОБЩЕСТВО", "ОАО",
	"ЗАКРЫТОЕ АКЦИОНЕРНОЕ ОБЩЕСТВО", "ЗАО",
	"АКЦИОНЕРНОЕ ОБЩЕСТВО", "АО",
)

// NormalizeName upper-cases an organization name, collapses whitespace and
// abbreviates legal forms, so "Ооо Ромашка" and
// "Общество с ограниченной ответственностью Ромашка" rank as one organization.
func NormalizeName(name string) string {
	upper := strings.Join(strings.Fields(strings.ToUpper(name)), " ")
	return legalForms.Replace(upper)
}
