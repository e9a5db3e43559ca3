// Package mocks provides shared test doubles for the store, auth and
// service interfaces.
//
// Store mocks keep an in-memory table and can be overridden per method
// through function fields:
//
//	users := mocks.NewMockUserStore()
//	users.GetByIDFn = func(ctx context.Context, id int64) (*domain.User, error) {
//	    return nil, errors.New("boom")
//	}
//
// Service mocks return zero values unless the matching function field is set.
package mocks
