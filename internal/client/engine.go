package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	internalhttp "github.com/fivetwenty-io/hapio-client/internal/http"
	"github.com/fivetwenty-io/hapio-client/pkg/hapio"
)

// pageFetcher re-issues a list request with new query parameters.
type pageFetcher[T hapio.Entity] func(ctx context.Context, params hapio.QueryParams) (*hapio.PaginatedResponse[T], error)

// translateError maps a transport failure onto the hapio error taxonomy.
// 422 becomes a ValidationError only when the operation accepts input.
func translateError(err error, allowValidation bool) error {
	respErr := &internalhttp.ResponseError{}
	if !errors.As(err, &respErr) {
		return hapio.NewTransportError(err)
	}

	if allowValidation && respErr.StatusCode == http.StatusUnprocessableEntity {
		validationErr := hapio.NewValidationError(respErr.StatusCode, respErr.Body)
		validationErr.Err = respErr

		return validationErr
	}

	requestErr := hapio.NewRequestError(respErr.StatusCode, respErr.Body)
	requestErr.Err = respErr

	return requestErr
}

func getEntity[T hapio.Entity](ctx context.Context, httpClient *internalhttp.Client, path string, newEntity func() T) (T, error) {
	var zero T

	resp, err := httpClient.Get(ctx, path, nil)
	if err != nil {
		return zero, translateError(err, false)
	}

	entity, err := hapio.DecodeEntity(resp.Body, newEntity)
	if err != nil {
		return zero, err
	}

	return entity, nil
}

// sendEntity sends entity serialized in input mode and hydrates the
// response. entity must not be nil.
func sendEntity[T hapio.Entity](ctx context.Context, httpClient *internalhttp.Client, method, path string, entity T, newEntity func() T) (T, error) {
	var zero T

	resp, err := httpClient.Do(ctx, &internalhttp.Request{
		Method: method,
		Path:   path,
		Body:   entity.ToMap(true),
	})
	if err != nil {
		return zero, translateError(err, true)
	}

	created, err := hapio.DecodeEntity(resp.Body, newEntity)
	if err != nil {
		return zero, err
	}

	return created, nil
}

// deleteEntity reports true only for a 204 response. Any other 2xx is a
// silent false.
func deleteEntity(ctx context.Context, httpClient *internalhttp.Client, path string) (bool, error) {
	resp, err := httpClient.Delete(ctx, path)
	if err != nil {
		return false, translateError(err, false)
	}

	return resp.StatusCode == http.StatusNoContent, nil
}

// listEntities fetches one page. The page follows links by parsing their
// query string and handing it to again.
func listEntities[T hapio.Entity](
	ctx context.Context,
	httpClient *internalhttp.Client,
	path string,
	params hapio.QueryParams,
	newEntity func() T,
	again pageFetcher[T],
) (*hapio.PaginatedResponse[T], error) {
	resp, err := httpClient.Get(ctx, path, params.ToValues())
	if err != nil {
		return nil, translateError(err, true)
	}

	items, meta, links, err := hapio.DecodePage(resp.Body, newEntity)
	if err != nil {
		return nil, err
	}

	follow := func(ctx context.Context, link string) (*hapio.PaginatedResponse[T], error) {
		linkParams, err := hapio.QueryParamsFromLink(link)
		if err != nil {
			return nil, err
		}

		return again(ctx, linkParams)
	}

	return hapio.NewPaginatedResponse(items, meta, links, follow), nil
}

// listBare fetches an endpoint answering with a plain JSON array.
func listBare[T hapio.Entity](ctx context.Context, httpClient *internalhttp.Client, path string, newEntity func() T) ([]T, error) {
	resp, err := httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, translateError(err, false)
	}

	return hapio.DecodeList(resp.Body, newEntity)
}

// putBare sends a body-less PUT and hydrates the response.
func putBare[T hapio.Entity](ctx context.Context, httpClient *internalhttp.Client, path string, newEntity func() T) (T, error) {
	var zero T

	resp, err := httpClient.Put(ctx, path, nil)
	if err != nil {
		return zero, translateError(err, false)
	}

	entity, err := hapio.DecodeEntity(resp.Body, newEntity)
	if err != nil {
		return zero, err
	}

	return entity, nil
}

func joinPath(base string, segments ...string) string {
	path := base
	for _, segment := range segments {
		path += "/" + url.PathEscape(segment)
	}

	return path
}

// crudRepository is the engine behind every top-level resource kind.
type crudRepository[T hapio.Entity] struct {
	httpClient *internalhttp.Client
	basePath   string
	name       string
	newEntity  func() T
}

func newCrudRepository[T hapio.Entity](httpClient *internalhttp.Client, basePath, name string, newEntity func() T) *crudRepository[T] {
	return &crudRepository[T]{
		httpClient: httpClient,
		basePath:   basePath,
		name:       name,
		newEntity:  newEntity,
	}
}

// Get implements hapio.CrudRepository.Get.
func (r *crudRepository[T]) Get(ctx context.Context, id string) (T, error) {
	entity, err := getEntity(ctx, r.httpClient, joinPath(r.basePath, id), r.newEntity)
	if err != nil {
		return entity, fmt.Errorf("getting %s: %w", r.name, err)
	}

	return entity, nil
}

// List implements hapio.CrudRepository.List.
func (r *crudRepository[T]) List(ctx context.Context, params hapio.QueryParams) (*hapio.PaginatedResponse[T], error) {
	page, err := listEntities(ctx, r.httpClient, r.basePath, params, r.newEntity, r.List)
	if err != nil {
		return nil, fmt.Errorf("listing %ss: %w", r.name, err)
	}

	return page, nil
}

// Store implements hapio.CrudRepository.Store.
func (r *crudRepository[T]) Store(ctx context.Context, entity T) (T, error) {
	stored, err := sendEntity(ctx, r.httpClient, http.MethodPost, r.basePath, entity, r.newEntity)
	if err != nil {
		return stored, fmt.Errorf("creating %s: %w", r.name, err)
	}

	return stored, nil
}

// Replace implements hapio.CrudRepository.Replace.
func (r *crudRepository[T]) Replace(ctx context.Context, id string, entity T) (T, error) {
	replaced, err := sendEntity(ctx, r.httpClient, http.MethodPut, joinPath(r.basePath, id), entity, r.newEntity)
	if err != nil {
		return replaced, fmt.Errorf("replacing %s: %w", r.name, err)
	}

	return replaced, nil
}

// Patch implements hapio.CrudRepository.Patch.
func (r *crudRepository[T]) Patch(ctx context.Context, id string, entity T) (T, error) {
	patched, err := sendEntity(ctx, r.httpClient, http.MethodPatch, joinPath(r.basePath, id), entity, r.newEntity)
	if err != nil {
		return patched, fmt.Errorf("updating %s: %w", r.name, err)
	}

	return patched, nil
}

// Delete implements hapio.CrudRepository.Delete.
func (r *crudRepository[T]) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := deleteEntity(ctx, r.httpClient, joinPath(r.basePath, id))
	if err != nil {
		return false, fmt.Errorf("deleting %s: %w", r.name, err)
	}

	return deleted, nil
}

// nestedCrudRepository is the engine behind resource kinds that live under
// parents. template holds one %s per parent id.
type nestedCrudRepository[T hapio.Entity] struct {
	httpClient *internalhttp.Client
	template   string
	parents    int
	name       string
	newEntity  func() T
}

func newNestedCrudRepository[T hapio.Entity](
	httpClient *internalhttp.Client,
	template string,
	parents int,
	name string,
	newEntity func() T,
) *nestedCrudRepository[T] {
	return &nestedCrudRepository[T]{
		httpClient: httpClient,
		template:   template,
		parents:    parents,
		name:       name,
		newEntity:  newEntity,
	}
}

func (r *nestedCrudRepository[T]) basePath(parentIDs []string) (string, error) {
	if len(parentIDs) != r.parents {
		return "", fmt.Errorf("%w: %s needs %d, got %d", hapio.ErrParentIDCount, r.name, r.parents, len(parentIDs))
	}

	args := make([]interface{}, len(parentIDs))
	for i, id := range parentIDs {
		args[i] = url.PathEscape(id)
	}

	return fmt.Sprintf(r.template, args...), nil
}

// Get implements hapio.NestedCrudRepository.Get.
func (r *nestedCrudRepository[T]) Get(ctx context.Context, parentIDs []string, id string) (T, error) {
	var zero T

	path, err := r.basePath(parentIDs)
	if err != nil {
		return zero, err
	}

	entity, err := getEntity(ctx, r.httpClient, joinPath(path, id), r.newEntity)
	if err != nil {
		return zero, fmt.Errorf("getting %s: %w", r.name, err)
	}

	return entity, nil
}

// List implements hapio.NestedCrudRepository.List. Pages reached through
// links keep the same parents.
func (r *nestedCrudRepository[T]) List(ctx context.Context, parentIDs []string, params hapio.QueryParams) (*hapio.PaginatedResponse[T], error) {
	path, err := r.basePath(parentIDs)
	if err != nil {
		return nil, err
	}

	parents := append([]string(nil), parentIDs...)
	again := func(ctx context.Context, params hapio.QueryParams) (*hapio.PaginatedResponse[T], error) {
		return r.List(ctx, parents, params)
	}

	page, err := listEntities(ctx, r.httpClient, path, params, r.newEntity, again)
	if err != nil {
		return nil, fmt.Errorf("listing %ss: %w", r.name, err)
	}

	return page, nil
}

// Store implements hapio.NestedCrudRepository.Store.
func (r *nestedCrudRepository[T]) Store(ctx context.Context, parentIDs []string, entity T) (T, error) {
	var zero T

	path, err := r.basePath(parentIDs)
	if err != nil {
		return zero, err
	}

	stored, err := sendEntity(ctx, r.httpClient, http.MethodPost, path, entity, r.newEntity)
	if err != nil {
		return zero, fmt.Errorf("creating %s: %w", r.name, err)
	}

	return stored, nil
}

// Replace implements hapio.NestedCrudRepository.Replace.
func (r *nestedCrudRepository[T]) Replace(ctx context.Context, parentIDs []string, id string, entity T) (T, error) {
	var zero T

	path, err := r.basePath(parentIDs)
	if err != nil {
		return zero, err
	}

	replaced, err := sendEntity(ctx, r.httpClient, http.MethodPut, joinPath(path, id), entity, r.newEntity)
	if err != nil {
		return zero, fmt.Errorf("replacing %s: %w", r.name, err)
	}

	return replaced, nil
}

// Patch implements hapio.NestedCrudRepository.Patch.
func (r *nestedCrudRepository[T]) Patch(ctx context.Context, parentIDs []string, id string, entity T) (T, error) {
	var zero T

	path, err := r.basePath(parentIDs)
	if err != nil {
		return zero, err
	}

	patched, err := sendEntity(ctx, r.httpClient, http.MethodPatch, joinPath(path, id), entity, r.newEntity)
	if err != nil {
		return zero, fmt.Errorf("updating %s: %w", r.name, err)
	}

	return patched, nil
}

// Delete implements hapio.NestedCrudRepository.Delete.
func (r *nestedCrudRepository[T]) Delete(ctx context.Context, parentIDs []string, id string) (bool, error) {
	path, err := r.basePath(parentIDs)
	if err != nil {
		return false, err
	}

	deleted, err := deleteEntity(ctx, r.httpClient, joinPath(path, id))
	if err != nil {
		return false, fmt.Errorf("deleting %s: %w", r.name, err)
	}

	return deleted, nil
}
