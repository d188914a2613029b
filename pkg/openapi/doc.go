// Package openapi exposes the public contracts for resolving capture-upload
// endpoints from OpenAPI documents. Profiles may reference an operationId
// instead of hardcoding an endpoint; the loader fetches the document, the
// parser extracts the operation metadata, and the Resolver maps it onto the
// widget's upload target. Implementations live under internal/openapi to keep
// kin-openapi dependencies hidden from consumers.
package openapi
