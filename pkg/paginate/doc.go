// Package paginate implements the pagination engine: request parameter
// construction for the supported pagination variants and field extraction
// from decoded API responses.
//
// Three variants are supported:
//
//   - offset: offset=(page-1)*pageSize, limit=pageSize
//   - cursor: cursor=page, limit=pageSize
//   - page:   page=page, pageSize=pageSize
//
// Parameter construction is a pure function of (variant, page, pageSize),
// so every variant is independently unit-testable.
//
// Field extraction uses flat single-segment paths: "totalCount" or
// "/totalCount" both resolve the top-level field "totalCount". Nested
// paths are not traversed; a configured path like "meta/total" will not
// resolve and yields a FieldNotFoundError.
package paginate
