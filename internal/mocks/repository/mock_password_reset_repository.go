package mocks

import (
	"context"
	"time"

	"identity/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPasswordResetRepository is a mock type for the PasswordResetRepository type
type MockPasswordResetRepository struct {
	mock.Mock
}

type MockPasswordResetRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockPasswordResetRepository) EXPECT() *MockPasswordResetRepository_Expecter {
	return &MockPasswordResetRepository_Expecter{mock: &_m.Mock}
}

// Create provides a mock function for the type MockPasswordResetRepository
func (_mock *MockPasswordResetRepository) Create(ctx context.Context, ticket *entity.PasswordResetTicket) error {
	ret := _mock.Called(ctx, ticket)

	if len(ret) == 0 {
		panic("no return value specified for Create")
	}

	var r0 error
	if returnFunc, ok := ret.Get(0).(func(context.Context, *entity.PasswordResetTicket) error); ok {
		r0 = returnFunc(ctx, ticket)
	} else {
		r0 = ret.Error(0)
	}
	return r0
}

// MockPasswordResetRepository_Create_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Create'
type MockPasswordResetRepository_Create_Call struct {
	*mock.Call
}

// Create is a helper method to define mock.On call
//   - ctx context.Context
//   - ticket *entity.PasswordResetTicket
func (_e *MockPasswordResetRepository_Expecter) Create(ctx interface{}, ticket interface{}) *MockPasswordResetRepository_Create_Call {
	return &MockPasswordResetRepository_Create_Call{Call: _e.mock.On("Create", ctx, ticket)}
}

func (_c *MockPasswordResetRepository_Create_Call) Run(run func(ctx context.Context, ticket *entity.PasswordResetTicket)) *MockPasswordResetRepository_Create_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}
		var arg1 *entity.PasswordResetTicket
		if args[1] != nil {
			arg1 = args[1].(*entity.PasswordResetTicket)
		}
		run(arg0, arg1)
	})
	return _c
}

func (_c *MockPasswordResetRepository_Create_Call) Return(err error) *MockPasswordResetRepository_Create_Call {
	_c.Call.Return(err)
	return _c
}

func (_c *MockPasswordResetRepository_Create_Call) RunAndReturn(run func(ctx context.Context, ticket *entity.PasswordResetTicket) error) *MockPasswordResetRepository_Create_Call {
	_c.Call.Return(run)
	return _c
}

// FindByTokenHash provides a mock function for the type MockPasswordResetRepository
func (_mock *MockPasswordResetRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.PasswordResetTicket, error) {
	ret := _mock.Called(ctx, tokenHash)

	if len(ret) == 0 {
		panic("no return value specified for FindByTokenHash")
	}

	var r0 *entity.PasswordResetTicket
	var r1 error
	if returnFunc, ok := ret.Get(0).(func(context.Context, string) (*entity.PasswordResetTicket, error)); ok {
		return returnFunc(ctx, tokenHash)
	}
	if returnFunc, ok := ret.Get(0).(func(context.Context, string) *entity.PasswordResetTicket); ok {
		r0 = returnFunc(ctx, tokenHash)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*entity.PasswordResetTicket)
		}
	}
	if returnFunc, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = returnFunc(ctx, tokenHash)
	} else {
		r1 = ret.Error(1)
	}
	return r0, r1
}

// MockPasswordResetRepository_FindByTokenHash_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FindByTokenHash'
type MockPasswordResetRepository_FindByTokenHash_Call struct {
	*mock.Call
}

// FindByTokenHash is a helper method to define mock.On call
//   - ctx context.Context
//   - tokenHash string
func (_e *MockPasswordResetRepository_Expecter) FindByTokenHash(ctx interface{}, tokenHash interface{}) *MockPasswordResetRepository_FindByTokenHash_Call {
	return &MockPasswordResetRepository_FindByTokenHash_Call{Call: _e.mock.On("FindByTokenHash", ctx, tokenHash)}
}

func (_c *MockPasswordResetRepository_FindByTokenHash_Call) Run(run func(ctx context.Context, tokenHash string)) *MockPasswordResetRepository_FindByTokenHash_Call {
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

func (_c *MockPasswordResetRepository_FindByTokenHash_Call) Return(passwordResetTicket *entity.PasswordResetTicket, err error) *MockPasswordResetRepository_FindByTokenHash_Call {
	_c.Call.Return(passwordResetTicket, err)
	return _c
}

func (_c *MockPasswordResetRepository_FindByTokenHash_Call) RunAndReturn(run func(ctx context.Context, tokenHash string) (*entity.PasswordResetTicket, error)) *MockPasswordResetRepository_FindByTokenHash_Call {
	_c.Call.Return(run)
	return _c
}

// DeleteUnusedByAccountID provides a mock function for the type MockPasswordResetRepository
func (_mock *MockPasswordResetRepository) DeleteUnusedByAccountID(ctx context.Context, accountID uuid.UUID) (int64, error) {
	ret := _mock.Called(ctx, accountID)

	if len(ret) == 0 {
		panic("no return value specified for DeleteUnusedByAccountID")
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

// MockPasswordResetRepository_DeleteUnusedByAccountID_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DeleteUnusedByAccountID'
type MockPasswordResetRepository_DeleteUnusedByAccountID_Call struct {
	*mock.Call
}

// DeleteUnusedByAccountID is a helper method to define mock.On call
//   - ctx context.Context
//   - accountID uuid.UUID
func (_e *MockPasswordResetRepository_Expecter) DeleteUnusedByAccountID(ctx interface{}, accountID interface{}) *MockPasswordResetRepository_DeleteUnusedByAccountID_Call {
	return &MockPasswordResetRepository_DeleteUnusedByAccountID_Call{Call: _e.mock.On("DeleteUnusedByAccountID", ctx, accountID)}
}

func (_c *MockPasswordResetRepository_DeleteUnusedByAccountID_Call) Run(run func(ctx context.Context, accountID uuid.UUID)) *MockPasswordResetRepository_DeleteUnusedByAccountID_Call {
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

func (_c *MockPasswordResetRepository_DeleteUnusedByAccountID_Call) Return(count int64, err error) *MockPasswordResetRepository_DeleteUnusedByAccountID_Call {
	_c.Call.Return(count, err)
	return _c
}

func (_c *MockPasswordResetRepository_DeleteUnusedByAccountID_Call) RunAndReturn(run func(ctx context.Context, accountID uuid.UUID) (int64, error)) *MockPasswordResetRepository_DeleteUnusedByAccountID_Call {
	_c.Call.Return(run)
	return _c
}

// MarkUsed provides a mock function for the type MockPasswordResetRepository
func (_mock *MockPasswordResetRepository) MarkUsed(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	ret := _mock.Called(ctx, id, at)

	if len(ret) == 0 {
		panic("no return value specified for MarkUsed")
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

// MockPasswordResetRepository_MarkUsed_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'MarkUsed'
type MockPasswordResetRepository_MarkUsed_Call struct {
	*mock.Call
}

// MarkUsed is a helper method to define mock.On call
//   - ctx context.Context
//   - id uuid.UUID
//   - at time.Time
func (_e *MockPasswordResetRepository_Expecter) MarkUsed(ctx interface{}, id interface{}, at interface{}) *MockPasswordResetRepository_MarkUsed_Call {
	return &MockPasswordResetRepository_MarkUsed_Call{Call: _e.mock.On("MarkUsed", ctx, id, at)}
}

func (_c *MockPasswordResetRepository_MarkUsed_Call) Run(run func(ctx context.Context, id uuid.UUID, at time.Time)) *MockPasswordResetRepository_MarkUsed_Call {
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

func (_c *MockPasswordResetRepository_MarkUsed_Call) Return(ok bool, err error) *MockPasswordResetRepository_MarkUsed_Call {
	_c.Call.Return(ok, err)
	return _c
}

func (_c *MockPasswordResetRepository_MarkUsed_Call) RunAndReturn(run func(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)) *MockPasswordResetRepository_MarkUsed_Call {
	_c.Call.Return(run)
	return _c
}

// DeleteExpired provides a mock function for the type MockPasswordResetRepository
func (_mock *MockPasswordResetRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
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

// MockPasswordResetRepository_DeleteExpired_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DeleteExpired'
type MockPasswordResetRepository_DeleteExpired_Call struct {
	*mock.Call
}

// DeleteExpired is a helper method to define mock.On call
//   - ctx context.Context
//   - now time.Time
func (_e *MockPasswordResetRepository_Expecter) DeleteExpired(ctx interface{}, now interface{}) *MockPasswordResetRepository_DeleteExpired_Call {
	return &MockPasswordResetRepository_DeleteExpired_Call{Call: _e.mock.On("DeleteExpired", ctx, now)}
}

func (_c *MockPasswordResetRepository_DeleteExpired_Call) Run(run func(ctx context.Context, now time.Time)) *MockPasswordResetRepository_DeleteExpired_Call {
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

func (_c *MockPasswordResetRepository_DeleteExpired_Call) Return(count int64, err error) *MockPasswordResetRepository_DeleteExpired_Call {
	_c.Call.Return(count, err)
	return _c
}

func (_c *MockPasswordResetRepository_DeleteExpired_Call) RunAndReturn(run func(ctx context.Context, now time.Time) (int64, error)) *MockPasswordResetRepository_DeleteExpired_Call {
	_c.Call.Return(run)
	return _c
}

// DeleteByAccountID provides a mock function for the type MockPasswordResetRepository
func (_mock *MockPasswordResetRepository) DeleteByAccountID(ctx context.Context, accountID uuid.UUID) error {
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

// MockPasswordResetRepository_DeleteByAccountID_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DeleteByAccountID'
type MockPasswordResetRepository_DeleteByAccountID_Call struct {
	*mock.Call
}

// DeleteByAccountID is a helper method to define mock.On call
//   - ctx context.Context
//   - accountID uuid.UUID
func (_e *MockPasswordResetRepository_Expecter) DeleteByAccountID(ctx interface{}, accountID interface{}) *MockPasswordResetRepository_DeleteByAccountID_Call {
	return &MockPasswordResetRepository_DeleteByAccountID_Call{Call: _e.mock.On("DeleteByAccountID", ctx, accountID)}
}

func (_c *MockPasswordResetRepository_DeleteByAccountID_Call) Run(run func(ctx context.Context, accountID uuid.UUID)) *MockPasswordResetRepository_DeleteByAccountID_Call {
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

func (_c *MockPasswordResetRepository_DeleteByAccountID_Call) Return(err error) *MockPasswordResetRepository_DeleteByAccountID_Call {
	_c.Call.Return(err)
	return _c
}

func (_c *MockPasswordResetRepository_DeleteByAccountID_Call) RunAndReturn(run func(ctx context.Context, accountID uuid.UUID) error) *MockPasswordResetRepository_DeleteByAccountID_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockPasswordResetRepository creates a new instance of MockPasswordResetRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockPasswordResetRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPasswordResetRepository {
	mock := &MockPasswordResetRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
