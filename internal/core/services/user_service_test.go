package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/bankops/backoffice/internal/apperrors"
	"github.com/bankops/backoffice/internal/core/domain"
	portssvc "github.com/bankops/backoffice/internal/core/ports/services"
	"github.com/bankops/backoffice/internal/core/services"
	"github.com/bankops/backoffice/internal/dto"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
	ctx          context.Context

	client domain.Actor
	staff  domain.Actor
	user   domain.User
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
	suite.ctx = context.Background()

	suite.client = domain.Actor{UserID: "user-1", Role: domain.RoleClient}
	suite.staff = domain.Actor{UserID: "admin-1", Role: domain.RoleAdministrator}
	suite.user = domain.User{
		UserID:         "user-1",
		Name:           "ivan",
		PassportNumber: "P-100",
		Role:           domain.RoleClient,
	}
}

func (suite *UserServiceTestSuite) TestRegisterUserSelfRegistration() {
	req := dto.RegisterUserRequest{Name: "ivan", PassportNumber: "P-100", Password: "secret-pass"}

	suite.mockUserRepo.On("SaveUser", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		hashOK := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret-pass")) == nil
		return u.Name == "ivan" && u.Role == domain.RoleClient && hashOK && u.CreatedBy == u.UserID
	})).Return(nil).Once()

	user, err := suite.service.RegisterUser(suite.ctx, domain.Actor{}, req)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleClient, user.Role)
	suite.NotEqual("secret-pass", user.PasswordHash)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUserStaffRoleRequiresStaffActor() {
	req := dto.RegisterUserRequest{Name: "boss", PassportNumber: "P-200", Password: "secret-pass", Role: domain.RoleManager}

	_, err := suite.service.RegisterUser(suite.ctx, suite.client, req)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestRegisterUserStaffAssignsRole() {
	req := dto.RegisterUserRequest{Name: "payday", PassportNumber: "P-300", Password: "secret-pass", Role: domain.RoleSpecialist}

	suite.mockUserRepo.On("SaveUser", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleSpecialist && u.CreatedBy == "admin-1"
	})).Return(nil).Once()

	user, err := suite.service.RegisterUser(suite.ctx, suite.staff, req)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleSpecialist, user.Role)
}

func (suite *UserServiceTestSuite) TestGetUserByIDSelf() {
	suite.mockUserRepo.On("FindUserByID", mock.Anything, "user-1").Return(&suite.user, nil).Once()

	user, err := suite.service.GetUserByID(suite.ctx, suite.client, "user-1")

	suite.Require().NoError(err)
	suite.Equal("user-1", user.UserID)
}

func (suite *UserServiceTestSuite) TestGetUserByIDStrangerForbidden() {
	stranger := domain.Actor{UserID: "user-9", Role: domain.RoleClient}

	_, err := suite.service.GetUserByID(suite.ctx, stranger, "user-1")

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByID", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestListUsersRequiresStaff() {
	_, err := suite.service.ListUsers(suite.ctx, suite.client, 20, 0)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestUpdateUserSelf() {
	newName := "ivan-updated"
	req := dto.UpdateUserRequest{Name: &newName}

	suite.mockUserRepo.On("FindUserByID", mock.Anything, "user-1").Return(&suite.user, nil).Once()
	suite.mockUserRepo.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.Name == "ivan-updated" && u.PassportNumber == "P-100" && u.LastUpdatedBy == "user-1"
	})).Return(nil).Once()

	user, err := suite.service.UpdateUser(suite.ctx, suite.client, "user-1", req)

	suite.Require().NoError(err)
	suite.Equal("ivan-updated", user.Name)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUserNoFields() {
	_, err := suite.service.UpdateUser(suite.ctx, suite.client, "user-1", dto.UpdateUserRequest{})

	suite.ErrorIs(err, apperrors.ErrNoFieldsToUpdate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUserOtherClientForbidden() {
	newName := "hijack"
	other := domain.Actor{UserID: "user-9", Role: domain.RoleClient}

	_, err := suite.service.UpdateUser(suite.ctx, other, "user-1", dto.UpdateUserRequest{Name: &newName})

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestDeleteUserRequiresStaff() {
	err := suite.service.DeleteUser(suite.ctx, suite.client, "user-1")

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "DeleteUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestDeleteUserSuccess() {
	suite.mockUserRepo.On("DeleteUser", mock.Anything, "user-1", "admin-1", mock.Anything).Return(nil).Once()

	err := suite.service.DeleteUser(suite.ctx, suite.staff, "user-1")

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
