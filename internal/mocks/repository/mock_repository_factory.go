package mocks

import (
	"identity/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockRepositoryFactory is a mock type for the RepositoryFactory type
type MockRepositoryFactory struct {
	mock.Mock
}

type MockRepositoryFactory_Expecter struct {
	mock *mock.Mock
}

func (_m *MockRepositoryFactory) EXPECT() *MockRepositoryFactory_Expecter {
	return &MockRepositoryFactory_Expecter{mock: &_m.Mock}
}

// AccountRepo provides a mock function for the type MockRepositoryFactory
func (_mock *MockRepositoryFactory) AccountRepo() repository.AccountRepository {
	ret := _mock.Called()

	if len(ret) == 0 {
		panic("no return value specified for AccountRepo")
	}

	var r0 repository.AccountRepository
	if returnFunc, ok := ret.Get(0).(func() repository.AccountRepository); ok {
		r0 = returnFunc()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(repository.AccountRepository)
		}
	}
	return r0
}

// MockRepositoryFactory_AccountRepo_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'AccountRepo'
type MockRepositoryFactory_AccountRepo_Call struct {
	*mock.Call
}

// AccountRepo is a helper method to define mock.On call
func (_e *MockRepositoryFactory_Expecter) AccountRepo() *MockRepositoryFactory_AccountRepo_Call {
	return &MockRepositoryFactory_AccountRepo_Call{Call: _e.mock.On("AccountRepo")}
}

func (_c *MockRepositoryFactory_AccountRepo_Call) Run(run func()) *MockRepositoryFactory_AccountRepo_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *MockRepositoryFactory_AccountRepo_Call) Return(accountRepository repository.AccountRepository) *MockRepositoryFactory_AccountRepo_Call {
	_c.Call.Return(accountRepository)
	return _c
}

func (_c *MockRepositoryFactory_AccountRepo_Call) RunAndReturn(run func() repository.AccountRepository) *MockRepositoryFactory_AccountRepo_Call {
	_c.Call.Return(run)
	return _c
}

// RefreshSessionRepo provides a mock function for the type MockRepositoryFactory
func (_mock *MockRepositoryFactory) RefreshSessionRepo() repository.RefreshSessionRepository {
	ret := _mock.Called()

	if len(ret) == 0 {
		panic("no return value specified for RefreshSessionRepo")
	}

	var r0 repository.RefreshSessionRepository
	if returnFunc, ok := ret.Get(0).(func() repository.RefreshSessionRepository); ok {
		r0 = returnFunc()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(repository.RefreshSessionRepository)
		}
	}
	return r0
}

// MockRepositoryFactory_RefreshSessionRepo_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'RefreshSessionRepo'
type MockRepositoryFactory_RefreshSessionRepo_Call struct {
	*mock.Call
}

// RefreshSessionRepo is a helper method to define mock.On call
func (_e *MockRepositoryFactory_Expecter) RefreshSessionRepo() *MockRepositoryFactory_RefreshSessionRepo_Call {
	return &MockRepositoryFactory_RefreshSessionRepo_Call{Call: _e.mock.On("RefreshSessionRepo")}
}

func (_c *MockRepositoryFactory_RefreshSessionRepo_Call) Run(run func()) *MockRepositoryFactory_RefreshSessionRepo_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *MockRepositoryFactory_RefreshSessionRepo_Call) Return(refreshSessionRepository repository.RefreshSessionRepository) *MockRepositoryFactory_RefreshSessionRepo_Call {
	_c.Call.Return(refreshSessionRepository)
	return _c
}

func (_c *MockRepositoryFactory_RefreshSessionRepo_Call) RunAndReturn(run func() repository.RefreshSessionRepository) *MockRepositoryFactory_RefreshSessionRepo_Call {
	_c.Call.Return(run)
	return _c
}

// VerificationTicketRepo provides a mock function for the type MockRepositoryFactory
func (_mock *MockRepositoryFactory) VerificationTicketRepo() repository.VerificationTicketRepository {
	ret := _mock.Called()

	if len(ret) == 0 {
		panic("no return value specified for VerificationTicketRepo")
	}

	var r0 repository.VerificationTicketRepository
	if returnFunc, ok := ret.Get(0).(func() repository.VerificationTicketRepository); ok {
		r0 = returnFunc()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(repository.VerificationTicketRepository)
		}
	}
	return r0
}

// MockRepositoryFactory_VerificationTicketRepo_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'VerificationTicketRepo'
type MockRepositoryFactory_VerificationTicketRepo_Call struct {
	*mock.Call
}

// VerificationTicketRepo is a helper method to define mock.On call
func (_e *MockRepositoryFactory_Expecter) VerificationTicketRepo() *MockRepositoryFactory_VerificationTicketRepo_Call {
	return &MockRepositoryFactory_VerificationTicketRepo_Call{Call: _e.mock.On("VerificationTicketRepo")}
}

func (_c *MockRepositoryFactory_VerificationTicketRepo_Call) Run(run func()) *MockRepositoryFactory_VerificationTicketRepo_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *MockRepositoryFactory_VerificationTicketRepo_Call) Return(verificationTicketRepository repository.VerificationTicketRepository) *MockRepositoryFactory_VerificationTicketRepo_Call {
	_c.Call.Return(verificationTicketRepository)
	return _c
}

func (_c *MockRepositoryFactory_VerificationTicketRepo_Call) RunAndReturn(run func() repository.VerificationTicketRepository) *MockRepositoryFactory_VerificationTicketRepo_Call {
	_c.Call.Return(run)
	return _c
}

// PasswordResetRepo provides a mock function for the type MockRepositoryFactory
func (_mock *MockRepositoryFactory) PasswordResetRepo() repository.PasswordResetRepository {
	ret := _mock.Called()

	if len(ret) == 0 {
		panic("no return value specified for PasswordResetRepo")
	}

	var r0 repository.PasswordResetRepository
	if returnFunc, ok := ret.Get(0).(func() repository.PasswordResetRepository); ok {
		r0 = returnFunc()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(repository.PasswordResetRepository)
		}
	}
	return r0
}

// MockRepositoryFactory_PasswordResetRepo_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'PasswordResetRepo'
type MockRepositoryFactory_PasswordResetRepo_Call struct {
	*mock.Call
}

// PasswordResetRepo is a helper method to define mock.On call
func (_e *MockRepositoryFactory_Expecter) PasswordResetRepo() *MockRepositoryFactory_PasswordResetRepo_Call {
	return &MockRepositoryFactory_PasswordResetRepo_Call{Call: _e.mock.On("PasswordResetRepo")}
}

func (_c *MockRepositoryFactory_PasswordResetRepo_Call) Run(run func()) *MockRepositoryFactory_PasswordResetRepo_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *MockRepositoryFactory_PasswordResetRepo_Call) Return(passwordResetRepository repository.PasswordResetRepository) *MockRepositoryFactory_PasswordResetRepo_Call {
	_c.Call.Return(passwordResetRepository)
	return _c
}

func (_c *MockRepositoryFactory_PasswordResetRepo_Call) RunAndReturn(run func() repository.PasswordResetRepository) *MockRepositoryFactory_PasswordResetRepo_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockRepositoryFactory creates a new instance of MockRepositoryFactory. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockRepositoryFactory(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRepositoryFactory {
	mock := &MockRepositoryFactory{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
