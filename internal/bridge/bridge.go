// Package bridge exposes the data access layer through a call/response
// boundary: named operations with JSON-serializable argument and result
// shapes, mirroring the host shell's invoke bridge.
package bridge

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MehmetDevlp/notenew/internal/sqlite"
	"github.com/MehmetDevlp/notenew/pkg/types"
)

// Error codes carried on the wire.
const (
	CodeBadRequest          = "bad_request"
	CodeUnknownOperation    = "unknown_operation"
	CodeNotFound            = "not_found"
	CodeSchemaMismatch      = "schema_mismatch"
	CodeUnknownPropertyType = "unknown_property_type"
	CodeConstraintViolation = "constraint_violation"
	CodeStoreIO             = "store_io"
)

// ErrUnknownOperation is returned by Invoke for an unregistered op name.
var ErrUnknownOperation = errors.New("unknown operation")

// errBadPayload marks a payload that failed to decode.
var errBadPayload = errors.New("malformed payload")

// Handler dispatches named operations to the store. Calls are dispatched
// one at a time by the host; the handler itself keeps no state.
type Handler struct {
	store *sqlite.Store
}

// NewHandler returns a Handler over the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{store: store}
}

// ErrorCode maps an operation error to its wire code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrUnknownOperation):
		return CodeUnknownOperation
	case errors.Is(err, errBadPayload),
		errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidParentType),
		errors.Is(err, types.ErrUnknownViewType):
		return CodeBadRequest
	case errors.Is(err, types.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, types.ErrSchemaMismatch):
		return CodeSchemaMismatch
	case errors.Is(err, types.ErrUnknownPropertyType):
		return CodeUnknownPropertyType
	case errors.Is(err, types.ErrConstraintViolation):
		return CodeConstraintViolation
	default:
		return CodeStoreIO
	}
}

// Request payload shapes. Unknown JSON keys are ignored on decode, per the
// wire contract's silent-ignore rule for updates.
type (
	idPayload struct {
		ID string `json:"id"`
	}
	createDatabasePayload struct {
		Title        string  `json:"title"`
		ParentPageID *string `json:"parentPageId"`
	}
	updateDatabasePayload struct {
		ID      string               `json:"id"`
		Updates types.DatabaseUpdate `json:"updates"`
	}
	addPropertyPayload struct {
		DatabaseID string          `json:"databaseId"`
		Name       string          `json:"name"`
		Type       string          `json:"type"`
		Config     json.RawMessage `json:"config"`
	}
	updatePropertyPayload struct {
		ID      string               `json:"id"`
		Updates types.PropertyUpdate `json:"updates"`
	}
	databaseIDPayload struct {
		DatabaseID string `json:"databaseId"`
	}
	createPagePayload struct {
		ParentID   string `json:"parentId"`
		ParentType string `json:"parentType"`
	}
	parentIDPayload struct {
		ParentID string `json:"parentId"`
	}
	updatePagePayload struct {
		ID      string           `json:"id"`
		Updates types.PageUpdate `json:"updates"`
	}
	setValuePayload struct {
		PageID     string          `json:"pageId"`
		PropertyID string          `json:"propertyId"`
		Value      json.RawMessage `json:"value"`
	}
	getValuePayload struct {
		PageID     string `json:"pageId"`
		PropertyID string `json:"propertyId"`
	}
	pageIDPayload struct {
		PageID string `json:"pageId"`
	}
	addViewPayload struct {
		DatabaseID string          `json:"databaseId"`
		Name       string          `json:"name"`
		Type       string          `json:"type"`
		Config     json.RawMessage `json:"config"`
	}
	updateViewPayload struct {
		ID      string           `json:"id"`
		Updates types.ViewUpdate `json:"updates"`
	}
)

// decode unmarshals payload into v, tolerating a missing payload for
// operations whose arguments are all optional.
func decode(payload json.RawMessage, v any) error {
	if len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %v", errBadPayload, err)
	}
	return nil
}

// Invoke runs the named operation with the given payload and returns its
// JSON-shaped result. Read lookups that match nothing return a nil result
// and no error; mutating operations report errors per the data access
// layer's contract.
func (h *Handler) Invoke(op string, payload json.RawMessage) (any, error) {
	switch op {
	case "db.create":
		var p createDatabasePayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		return h.store.CreateDatabase(p.Title, p.ParentPageID)
	case "db.get":
		var p idPayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		return nullOnNotFound(h.store.GetDatabase(p.ID))
	case "db.getAll":
		return h.store.GetDatabases()
	case "db.update":
		var p updateDatabasePayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		return nil, h.store.UpdateDatabase(p.ID, p.Updates)
	case "db.delete":
		var p idPayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		return nil, h.store.DeleteDatabase(p.ID)
	case "property.add":
		var p addPropertyPayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		return h.store.AddProperty(p.DatabaseID, p.Name, types.PropertyType(p.Type), p.Config)
	case "property.update":
		var p updatePropertyPayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		return nil, h.store.UpdateProperty(p.ID, p.Updates)
	case "property.delete":
		var p idPayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		return nil, h.store.DeleteProperty(p.ID)
	case "property.getAll":
		var p databaseIDPayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		return h.store.GetProperties(p.DatabaseID)
	case "page.create":
		var p createPagePayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		return h.store.CreatePage(types.ParentRef{
			Kind: types.ParentKind(p.ParentType),
			ID:   p.ParentID,
		})
	case "page.get":
		var p idPayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		return nullOnNotFound(h.store.GetPage(p.ID))
	case "page.getMany":
		var p parentIDPayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		return h.store.GetPages(p.ParentID)
	case "page.update":
		var p updatePagePayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		return nil, h.store.UpdatePage(p.ID, p.Updates)
	case "page.delete":
		var p idPayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		return nil, h.store.DeletePage(p.ID)
	case "value.set":
		var p setValuePayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		return nil, h.store.SetPropertyValue(p.PageID, p.PropertyID, p.Value)
	case "value.get":
		var p getValuePayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		return nullOnNotFound(h.store.GetPropertyValue(p.PageID, p.PropertyID))
	case "value.getPageMap":
		var p pageIDPayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		return h.store.GetPageProperties(p.PageID)
	case "view.add":
		var p addViewPayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		return h.store.AddView(p.DatabaseID, p.Name, types.ViewType(p.Type), p.Config)
	case "view.update":
		var p updateViewPayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		return nil, h.store.UpdateView(p.ID, p.Updates)
	case "view.delete":
		var p idPayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		return nil, h.store.DeleteView(p.ID)
	case "view.getAll":
		var p databaseIDPayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		return h.store.GetViews(p.DatabaseID)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, op)
	}
}

// nullOnNotFound converts a read's ErrNotFound into a nil result, the wire
// contract's null for lookups that match nothing.
func nullOnNotFound[T any](result T, err error) (any, error) {
	if errors.Is(err, types.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}
