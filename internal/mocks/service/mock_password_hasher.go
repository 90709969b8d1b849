package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher is a mock type for the PasswordHasher type
type MockPasswordHasher struct {
	mock.Mock
}

type MockPasswordHasher_Expecter struct {
	mock *mock.Mock
}

func (_m *MockPasswordHasher) EXPECT() *MockPasswordHasher_Expecter {
	return &MockPasswordHasher_Expecter{mock: &_m.Mock}
}

// Hash provides a mock function for the type MockPasswordHasher
func (_mock *MockPasswordHasher) Hash(password string) (string, error) {
	ret := _mock.Called(password)

	if len(ret) == 0 {
		panic("no return value specified for Hash")
	}

	var r0 string
	var r1 error
	if returnFunc, ok := ret.Get(0).(func(string) (string, error)); ok {
		return returnFunc(password)
	}
	if returnFunc, ok := ret.Get(0).(func(string) string); ok {
		r0 = returnFunc(password)
	} else {
		r0 = ret.Get(0).(string)
	}
	if returnFunc, ok := ret.Get(1).(func(string) error); ok {
		r1 = returnFunc(password)
	} else {
		r1 = ret.Error(1)
	}
	return r0, r1
}

// MockPasswordHasher_Hash_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Hash'
type MockPasswordHasher_Hash_Call struct {
	*mock.Call
}

// Hash is a helper method to define mock.On call
//   - password string
func (_e *MockPasswordHasher_Expecter) Hash(password interface{}) *MockPasswordHasher_Hash_Call {
	return &MockPasswordHasher_Hash_Call{Call: _e.mock.On("Hash", password)}
}

func (_c *MockPasswordHasher_Hash_Call) Run(run func(password string)) *MockPasswordHasher_Hash_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 string
		if args[0] != nil {
			arg0 = args[0].(string)
		}
		run(arg0)
	})
	return _c
}

func (_c *MockPasswordHasher_Hash_Call) Return(s string, err error) *MockPasswordHasher_Hash_Call {
	_c.Call.Return(s, err)
	return _c
}

func (_c *MockPasswordHasher_Hash_Call) RunAndReturn(run func(password string) (string, error)) *MockPasswordHasher_Hash_Call {
	_c.Call.Return(run)
	return _c
}

// Check provides a mock function for the type MockPasswordHasher
func (_mock *MockPasswordHasher) Check(password string, hash string) bool {
	ret := _mock.Called(password, hash)

	if len(ret) == 0 {
		panic("no return value specified for Check")
	}

	var r0 bool
	if returnFunc, ok := ret.Get(0).(func(string, string) bool); ok {
		r0 = returnFunc(password, hash)
	} else {
		r0 = ret.Get(0).(bool)
	}
	return r0
}

// MockPasswordHasher_Check_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Check'
type MockPasswordHasher_Check_Call struct {
	*mock.Call
}

// Check is a helper method to define mock.On call
//   - password string
//   - hash string
func (_e *MockPasswordHasher_Expecter) Check(password interface{}, hash interface{}) *MockPasswordHasher_Check_Call {
	return &MockPasswordHasher_Check_Call{Call: _e.mock.On("Check", password, hash)}
}

func (_c *MockPasswordHasher_Check_Call) Run(run func(password string, hash string)) *MockPasswordHasher_Check_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 string
		if args[0] != nil {
			arg0 = args[0].(string)
		}
		var arg1 string
		if args[1] != nil {
			arg1 = args[1].(string)
		}
		run(arg0, arg1)
	})
	return _c
}

func (_c *MockPasswordHasher_Check_Call) Return(ok bool) *MockPasswordHasher_Check_Call {
	_c.Call.Return(ok)
	return _c
}

func (_c *MockPasswordHasher_Check_Call) RunAndReturn(run func(password string, hash string) bool) *MockPasswordHasher_Check_Call {
	_c.Call.Return(run)
	return _c
}

// ValidatePasswordStrength provides a mock function for the type MockPasswordHasher
func (_mock *MockPasswordHasher) ValidatePasswordStrength(password string) error {
	ret := _mock.Called(password)

	if len(ret) == 0 {
		panic("no return value specified for ValidatePasswordStrength")
	}

	var r0 error
	if returnFunc, ok := ret.Get(0).(func(string) error); ok {
		r0 = returnFunc(password)
	} else {
		r0 = ret.Error(0)
	}
	return r0
}

// MockPasswordHasher_ValidatePasswordStrength_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'ValidatePasswordStrength'
type MockPasswordHasher_ValidatePasswordStrength_Call struct {
	*mock.Call
}

// ValidatePasswordStrength is a helper method to define mock.On call
//   - password string
func (_e *MockPasswordHasher_Expecter) ValidatePasswordStrength(password interface{}) *MockPasswordHasher_ValidatePasswordStrength_Call {
	return &MockPasswordHasher_ValidatePasswordStrength_Call{Call: _e.mock.On("ValidatePasswordStrength", password)}
}

func (_c *MockPasswordHasher_ValidatePasswordStrength_Call) Run(run func(password string)) *MockPasswordHasher_ValidatePasswordStrength_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 string
		if args[0] != nil {
			arg0 = args[0].(string)
		}
		run(arg0)
	})
	return _c
}

func (_c *MockPasswordHasher_ValidatePasswordStrength_Call) Return(err error) *MockPasswordHasher_ValidatePasswordStrength_Call {
	_c.Call.Return(err)
	return _c
}

func (_c *MockPasswordHasher_ValidatePasswordStrength_Call) RunAndReturn(run func(password string) error) *MockPasswordHasher_ValidatePasswordStrength_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockPasswordHasher creates a new instance of MockPasswordHasher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockPasswordHasher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPasswordHasher {
	mock := &MockPasswordHasher{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
