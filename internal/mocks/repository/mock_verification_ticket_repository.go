package mocks

import (
	"context"
	"time"

	"identity/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockVerificationTicketRepository is a mock type for the VerificationTicketRepository type
type MockVerificationTicketRepository struct {
	mock.Mock
}

type MockVerificationTicketRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockVerificationTicketRepository) EXPECT() *MockVerificationTicketRepository_Expecter {
	return &MockVerificationTicketRepository_Expecter{mock: &_m.Mock}
}

// Create provides a mock function for the type MockVerificationTicketRepository
func (_mock *MockVerificationTicketRepository) Create(ctx context.Context, ticket *entity.EmailVerificationTicket) error {
	ret := _mock.Called(ctx, ticket)

	if len(ret) == 0 {
		panic("no return value specified for Create")
	}

	var r0 error
	if returnFunc, ok := ret.Get(0).(func(context.Context, *entity.EmailVerificationTicket) error); ok {
		r0 = returnFunc(ctx, ticket)
	} else {
		r0 = ret.Error(0)
	}
	return r0
}

// MockVerificationTicketRepository_Create_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Create'
type MockVerificationTicketRepository_Create_Call struct {
	*mock.Call
}

// Create is a helper method to define mock.On call
//   - ctx context.Context
//   - ticket *entity.EmailVerificationTicket
func (_e *MockVerificationTicketRepository_Expecter) Create(ctx interface{}, ticket interface{}) *MockVerificationTicketRepository_Create_Call {
	return &MockVerificationTicketRepository_Create_Call{Call: _e.mock.On("Create", ctx, ticket)}
}

func (_c *MockVerificationTicketRepository_Create_Call) Run(run func(ctx context.Context, ticket *entity.EmailVerificationTicket)) *MockVerificationTicketRepository_Create_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}
		var arg1 *entity.EmailVerificationTicket
		if args[1] != nil {
			arg1 = args[1].(*entity.EmailVerificationTicket)
		}
		run(arg0, arg1)
	})
	return _c
}

func (_c *MockVerificationTicketRepository_Create_Call) Return(err error) *MockVerificationTicketRepository_Create_Call {
	_c.Call.Return(err)
	return _c
}

func (_c *MockVerificationTicketRepository_Create_Call) RunAndReturn(run func(ctx context.Context, ticket *entity.EmailVerificationTicket) error) *MockVerificationTicketRepository_Create_Call {
	_c.Call.Return(run)
	return _c
}

// FindByTokenHash provides a mock function for the type MockVerificationTicketRepository
func (_mock *MockVerificationTicketRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.EmailVerificationTicket, error) {
	ret := _mock.Called(ctx, tokenHash)

	if len(ret) == 0 {
		panic("no return value specified for FindByTokenHash")
	}

	var r0 *entity.EmailVerificationTicket
	var r1 error
	if returnFunc, ok := ret.Get(0).(func(context.Context, string) (*entity.EmailVerificationTicket, error)); ok {
		return returnFunc(ctx, tokenHash)
	}
	if returnFunc, ok := ret.Get(0).(func(context.Context, string) *entity.EmailVerificationTicket); ok {
		r0 = returnFunc(ctx, tokenHash)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*entity.EmailVerificationTicket)
		}
	}
	if returnFunc, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = returnFunc(ctx, tokenHash)
	} else {
		r1 = ret.Error(1)
	}
	return r0, r1
}

// MockVerificationTicketRepository_FindByTokenHash_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FindByTokenHash'
type MockVerificationTicketRepository_FindByTokenHash_Call struct {
	*mock.Call
}

// FindByTokenHash is a helper method to define mock.On call
//   - ctx context.Context
//   - tokenHash string
func (_e *MockVerificationTicketRepository_Expecter) FindByTokenHash(ctx interface{}, tokenHash interface{}) *MockVerificationTicketRepository_FindByTokenHash_Call {
	return &MockVerificationTicketRepository_FindByTokenHash_Call{Call: _e.mock.On("FindByTokenHash", ctx, tokenHash)}
}

func (_c *MockVerificationTicketRepository_FindByTokenHash_Call) Run(run func(ctx context.Context, tokenHash string)) *MockVerificationTicketRepository_FindByTokenHash_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}
		var arg1 string
		if args[1] != nil {
			arg1 = args[1].(string)
		}
		run(arg0, arg1)
	})
	return _c
}

func (_c *MockVerificationTicketRepository_FindByTokenHash_Call) Return(emailVerificationTicket *entity.EmailVerificationTicket, err error) *MockVerificationTicketRepository_FindByTokenHash_Call {
	_c.Call.Return(emailVerificationTicket, err)
	return _c
}

func (_c *MockVerificationTicketRepository_FindByTokenHash_Call) RunAndReturn(run func(ctx context.Context, tokenHash string) (*entity.EmailVerificationTicket, error)) *MockVerificationTicketRepository_FindByTokenHash_Call {
	_c.Call.Return(run)
	return _c
}

// DeleteUnverifiedByAccountID provides a mock function for the type MockVerificationTicketRepository
func (_mock *MockVerificationTicketRepository) DeleteUnverifiedByAccountID(ctx context.Context, accountID uuid.UUID) (int64, error) {
	ret := _mock.Called(ctx, accountID)

	if len(ret) == 0 {
		panic("no return value specified for DeleteUnverifiedByAccountID")
	}

	var r0 int64
	var r1 error
	if returnFunc, ok := ret.Get(0).(func(context.Context, uuid.UUID) (int64, error)); ok {
		return returnFunc(ctx, accountID)
	}
	if returnFunc, ok := ret.Get(0).(func(context.Context, uuid.UUID) int64); ok {
		r0 = returnFunc(ctx, accountID)
	} else {
		r0 = ret.Get(0).(int64)
	}
	if returnFunc, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = returnFunc(ctx, accountID)
	} else {
		r1 = ret.Error(1)
	}
	return r0, r1
}

// MockVerificationTicketRepository_DeleteUnverifiedByAccountID_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DeleteUnverifiedByAccountID'
type MockVerificationTicketRepository_DeleteUnverifiedByAccountID_Call struct {
	*mock.Call
}

// DeleteUnverifiedByAccountID is a helper method to define mock.On call
//   - ctx context.Context
//   - accountID uuid.UUID
func (_e *MockVerificationTicketRepository_Expecter) DeleteUnverifiedByAccountID(ctx interface{}, accountID interface{}) *MockVerificationTicketRepository_DeleteUnverifiedByAccountID_Call {
	return &MockVerificationTicketRepository_DeleteUnverifiedByAccountID_Call{Call: _e.mock.On("DeleteUnverifiedByAccountID", ctx, accountID)}
}

func (_c *MockVerificationTicketRepository_DeleteUnverifiedByAccountID_Call) Run(run func(ctx context.Context, accountID uuid.UUID)) *MockVerificationTicketRepository_DeleteUnverifiedByAccountID_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}
		var arg1 uuid.UUID
		if args[1] != nil {
			arg1 = args[1].(uuid.UUID)
		}
		run(arg0, arg1)
	})
	return _c
}

func (_c *MockVerificationTicketRepository_DeleteUnverifiedByAccountID_Call) Return(count int64, err error) *MockVerificationTicketRepository_DeleteUnverifiedByAccountID_Call {
	_c.Call.Return(count, err)
	return _c
}

func (_c *MockVerificationTicketRepository_DeleteUnverifiedByAccountID_Call) RunAndReturn(run func(ctx context.Context, accountID uuid.UUID) (int64, error)) *MockVerificationTicketRepository_DeleteUnverifiedByAccountID_Call {
	_c.Call.Return(run)
	return _c
}

// MarkVerified provides a mock function for the type MockVerificationTicketRepository
func (_mock *MockVerificationTicketRepository) MarkVerified(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	ret := _mock.Called(ctx, id, at)

	if len(ret) == 0 {
		panic("no return value specified for MarkVerified")
	}

	var r0 bool
	var r1 error
	if returnFunc, ok := ret.Get(0).(func(context.Context, uuid.UUID, time.Time) (bool, error)); ok {
		return returnFunc(ctx, id, at)
	}
	if returnFunc, ok := ret.Get(0).(func(context.Context, uuid.UUID, time.Time) bool); ok {
		r0 = returnFunc(ctx, id, at)
	} else {
		r0 = ret.Get(0).(bool)
	}
	if returnFunc, ok := ret.Get(1).(func(context.Context, uuid.UUID, time.Time) error); ok {
		r1 = returnFunc(ctx, id, at)
	} else {
		r1 = ret.Error(1)
	}
	return r0, r1
}

// MockVerificationTicketRepository_MarkVerified_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'MarkVerified'
type MockVerificationTicketRepository_MarkVerified_Call struct {
	*mock.Call
}

// MarkVerified is a helper method to define mock.On call
//   - ctx context.Context
//   - id uuid.UUID
//   - at time.Time
func (_e *MockVerificationTicketRepository_Expecter) MarkVerified(ctx interface{}, id interface{}, at interface{}) *MockVerificationTicketRepository_MarkVerified_Call {
	return &MockVerificationTicketRepository_MarkVerified_Call{Call: _e.mock.On("MarkVerified", ctx, id, at)}
}

func (_c *MockVerificationTicketRepository_MarkVerified_Call) Run(run func(ctx context.Context, id uuid.UUID, at time.Time)) *MockVerificationTicketRepository_MarkVerified_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}
		var arg1 uuid.UUID
		if args[1] != nil {
			arg1 = args[1].(uuid.UUID)
		}
		var arg2 time.Time
		if args[2] != nil {
			arg2 = args[2].(time.Time)
		}
		run(arg0, arg1, arg2)
	})
	return _c
}

func (_c *MockVerificationTicketRepository_MarkVerified_Call) Return(ok bool, err error) *MockVerificationTicketRepository_MarkVerified_Call {
	_c.Call.Return(ok, err)
	return _c
}

func (_c *MockVerificationTicketRepository_MarkVerified_Call) RunAndReturn(run func(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)) *MockVerificationTicketRepository_MarkVerified_Call {
	_c.Call.Return(run)
	return _c
}

// HasPendingByAccountID provides a mock function for the type MockVerificationTicketRepository
func (_mock *MockVerificationTicketRepository) HasPendingByAccountID(ctx context.Context, accountID uuid.UUID, now time.Time) (bool, error) {
	ret := _mock.Called(ctx, accountID, now)

	if len(ret) == 0 {
		panic("no return value specified for HasPendingByAccountID")
	}

	var r0 bool
	var r1 error
	if returnFunc, ok := ret.Get(0).(func(context.Context, uuid.UUID, time.Time) (bool, error)); ok {
		return returnFunc(ctx, accountID, now)
	}
	if returnFunc, ok := ret.Get(0).(func(context.Context, uuid.UUID, time.Time) bool); ok {
		r0 = returnFunc(ctx, accountID, now)
	} else {
		r0 = ret.Get(0).(bool)
	}
	if returnFunc, ok := ret.Get(1).(func(context.Context, uuid.UUID, time.Time) error); ok {
		r1 = returnFunc(ctx, accountID, now)
	} else {
		r1 = ret.Error(1)
	}
	return r0, r1
}

// MockVerificationTicketRepository_HasPendingByAccountID_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'HasPendingByAccountID'
type MockVerificationTicketRepository_HasPendingByAccountID_Call struct {
	*mock.Call
}

// HasPendingByAccountID is a helper method to define mock.On call
//   - ctx context.Context
//   - accountID uuid.UUID
//   - now time.Time
func (_e *MockVerificationTicketRepository_Expecter) HasPendingByAccountID(ctx interface{}, accountID interface{}, now interface{}) *MockVerificationTicketRepository_HasPendingByAccountID_Call {
	return &MockVerificationTicketRepository_HasPendingByAccountID_Call{Call: _e.mock.On("HasPendingByAccountID", ctx, accountID, now)}
}

func (_c *MockVerificationTicketRepository_HasPendingByAccountID_Call) Run(run func(ctx context.Context, accountID uuid.UUID, now time.Time)) *MockVerificationTicketRepository_HasPendingByAccountID_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}
		var arg1 uuid.UUID
		if args[1] != nil {
			arg1 = args[1].(uuid.UUID)
		}
		var arg2 time.Time
		if args[2] != nil {
			arg2 = args[2].(time.Time)
		}
		run(arg0, arg1, arg2)
	})
	return _c
}

func (_c *MockVerificationTicketRepository_HasPendingByAccountID_Call) Return(ok bool, err error) *MockVerificationTicketRepository_HasPendingByAccountID_Call {
	_c.Call.Return(ok, err)
	return _c
}

func (_c *MockVerificationTicketRepository_HasPendingByAccountID_Call) RunAndReturn(run func(ctx context.Context, accountID uuid.UUID, now time.Time) (bool, error)) *MockVerificationTicketRepository_HasPendingByAccountID_Call {
	_c.Call.Return(run)
	return _c
}

// DeleteExpired provides a mock function for the type MockVerificationTicketRepository
func (_mock *MockVerificationTicketRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	ret := _mock.Called(ctx, now)

	if len(ret) == 0 {
		panic("no return value specified for DeleteExpired")
	}

	var r0 int64
	var r1 error
	if returnFunc, ok := ret.Get(0).(func(context.Context, time.Time) (int64, error)); ok {
		return returnFunc(ctx, now)
	}
	if returnFunc, ok := ret.Get(0).(func(context.Context, time.Time) int64); ok {
		r0 = returnFunc(ctx, now)
	} else {
		r0 = ret.Get(0).(int64)
	}
	if returnFunc, ok := ret.Get(1).(func(context.Context, time.Time) error); ok {
		r1 = returnFunc(ctx, now)
	} else {
		r1 = ret.Error(1)
	}
	return r0, r1
}

// MockVerificationTicketRepository_DeleteExpired_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DeleteExpired'
type MockVerificationTicketRepository_DeleteExpired_Call struct {
	*mock.Call
}

// DeleteExpired is a helper method to define mock.On call
//   - ctx context.Context
//   - now time.Time
func (_e *MockVerificationTicketRepository_Expecter) DeleteExpired(ctx interface{}, now interface{}) *MockVerificationTicketRepository_DeleteExpired_Call {
	return &MockVerificationTicketRepository_DeleteExpired_Call{Call: _e.mock.On("DeleteExpired", ctx, now)}
}

func (_c *MockVerificationTicketRepository_DeleteExpired_Call) Run(run func(ctx context.Context, now time.Time)) *MockVerificationTicketRepository_DeleteExpired_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}
		var arg1 time.Time
		if args[1] != nil {
			arg1 = args[1].(time.Time)
		}
		run(arg0, arg1)
	})
	return _c
}

func (_c *MockVerificationTicketRepository_DeleteExpired_Call) Return(count int64, err error) *MockVerificationTicketRepository_DeleteExpired_Call {
	_c.Call.Return(count, err)
	return _c
}

func (_c *MockVerificationTicketRepository_DeleteExpired_Call) RunAndReturn(run func(ctx context.Context, now time.Time) (int64, error)) *MockVerificationTicketRepository_DeleteExpired_Call {
	_c.Call.Return(run)
	return _c
}

// DeleteByAccountID provides a mock function for the type MockVerificationTicketRepository
func (_mock *MockVerificationTicketRepository) DeleteByAccountID(ctx context.Context, accountID uuid.UUID) error {
	ret := _mock.Called(ctx, accountID)

	if len(ret) == 0 {
		panic("no return value specified for DeleteByAccountID")
	}

	var r0 error
	if returnFunc, ok := ret.Get(0).(func(context.Context, uuid.UUID) error); ok {
		r0 = returnFunc(ctx, accountID)
	} else {
		r0 = ret.Error(0)
	}
	return r0
}

// MockVerificationTicketRepository_DeleteByAccountID_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DeleteByAccountID'
type MockVerificationTicketRepository_DeleteByAccountID_Call struct {
	*mock.Call
}

// DeleteByAccountID is a helper method to define mock.On call
//   - ctx context.Context
//   - accountID uuid.UUID
func (_e *MockVerificationTicketRepository_Expecter) DeleteByAccountID(ctx interface{}, accountID interface{}) *MockVerificationTicketRepository_DeleteByAccountID_Call {
	return &MockVerificationTicketRepository_DeleteByAccountID_Call{Call: _e.mock.On("DeleteByAccountID", ctx, accountID)}
}

func (_c *MockVerificationTicketRepository_DeleteByAccountID_Call) Run(run func(ctx context.Context, accountID uuid.UUID)) *MockVerificationTicketRepository_DeleteByAccountID_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}
		var arg1 uuid.UUID
		if args[1] != nil {
			arg1 = args[1].(uuid.UUID)
		}
		run(arg0, arg1)
	})
	return _c
}

func (_c *MockVerificationTicketRepository_DeleteByAccountID_Call) Return(err error) *MockVerificationTicketRepository_DeleteByAccountID_Call {
	_c.Call.Return(err)
	return _c
}

func (_c *MockVerificationTicketRepository_DeleteByAccountID_Call) RunAndReturn(run func(ctx context.Context, accountID uuid.UUID) error) *MockVerificationTicketRepository_DeleteByAccountID_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockVerificationTicketRepository creates a new instance of MockVerificationTicketRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockVerificationTicketRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockVerificationTicketRepository {
	mock := &MockVerificationTicketRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
