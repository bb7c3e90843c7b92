package user

import (
	"context"
	"time"

	"github.com/google/uuid"

	"trumpet/internal/common"
	"trumpet/internal/config"
	"trumpet/internal/dbmysql"
)

type RegisterInput struct {
	Email      string   `json:"email"`
	Username   string   `json:"username"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Password   string   `json:"password"`
	Occupation string   `json:"occupation"`
	Interests  []string `json:"interests"`
	Location   string   `json:"location"`
	Bio        *string  `json:"bio,omitempty"`
	Avatar     *string  `json:"avatar,omitempty"`
}

// UpdateProfileInput carries a partial update; nil fields are left alone.
type UpdateProfileInput struct {
	FirstName  *string   `json:"first_name,omitempty"`
	LastName   *string   `json:"last_name,omitempty"`
	Occupation *string   `json:"occupation,omitempty"`
	Interests  *[]string `json:"interests,omitempty"`
	Location   *string   `json:"location,omitempty"`
	Bio        *string   `json:"bio,omitempty"`
	Avatar     *string   `json:"avatar,omitempty"`
}

// ConnectionResponse embeds both parties, resolved via explicit lookups.
type ConnectionResponse struct {
	*dbmysql.Connection
	Requester *dbmysql.User `json:"requester"`
	Receiver  *dbmysql.User `json:"receiver"`
}

type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*dbmysql.User, string, error)
	Login(ctx context.Context, email, password string) (*dbmysql.User, string, error)
	GetProfile(ctx context.Context, userID string) (*dbmysql.User, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*dbmysql.User, error)
	ListUsers(ctx context.Context, filter ListFilter) ([]*dbmysql.User, error)
	SearchUsers(ctx context.Context, query string, skip, limit int) ([]*dbmysql.User, error)
	RequestConnection(ctx context.Context, requesterID, receiverID string) (*ConnectionResponse, error)
	RespondToConnection(ctx context.Context, userID, connectionID string, accept bool) (*dbmysql.Connection, error)
	ListConnections(ctx context.Context, userID string) ([]*ConnectionResponse, error)
}

type userService struct {
	userRepo UserRepository
	connRepo ConnectionRepository
	tokenTTL time.Duration
}

func NewUserService(userRepo UserRepository, connRepo ConnectionRepository, cfg *config.Config) UserService {
	return &userService{userRepo: userRepo, connRepo: connRepo, tokenTTL: cfg.Auth.TokenTTL}
}

func (s *userService) Register(ctx context.Context, input RegisterInput) (*dbmysql.User, string, error) {
	if err := common.ValidateEmail(input.Email); err != nil {
		return nil, "", err
	}
	if err := common.ValidateUsername(input.Username); err != nil {
		return nil, "", err
	}
	if err := common.ValidatePassword(input.Password); err != nil {
		return nil, "", err
	}
	if input.FirstName == "" || input.LastName == "" {
		return nil, "", common.Invalidf("first and last name required")
	}
	if input.Occupation == "" || input.Location == "" {
		return nil, "", common.Invalidf("occupation and location required")
	}

	taken, err := s.userRepo.CheckIdentityTaken(ctx, input.Email, input.Username)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", common.Conflictf("email or username already registered")
	}

	hashed, err := common.HashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	u := &dbmysql.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hashed,
		Occupation:   input.Occupation,
		Interests:    common.StringList(input.Interests),
		Location:     input.Location,
		Bio:          input.Bio,
		Avatar:       input.Avatar,
	}
	if err := s.userRepo.CreateUser(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := common.GenerateToken(u.ID, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*dbmysql.User, string, error) {
	if email == "" || password == "" {
		return nil, "", common.Invalidf("email and password required")
	}

	u, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		// Do not leak whether the account exists.
		return nil, "", common.ErrUnauthorized
	}
	if err := common.CheckPassword(password, u.PasswordHash); err != nil {
		return nil, "", common.ErrUnauthorized
	}

	token, err := common.GenerateToken(u.ID, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*dbmysql.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*dbmysql.User, error) {
	u, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		u.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		u.LastName = *input.LastName
	}
	if input.Occupation != nil {
		u.Occupation = *input.Occupation
	}
	if input.Interests != nil {
		u.Interests = common.StringList(*input.Interests)
	}
	if input.Location != nil {
		u.Location = *input.Location
	}
	if input.Bio != nil {
		u.Bio = input.Bio
	}
	if input.Avatar != nil {
		u.Avatar = input.Avatar
	}

	if err := s.userRepo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) ListUsers(ctx context.Context, filter ListFilter) ([]*dbmysql.User, error) {
	return s.userRepo.ListUsers(ctx, filter)
}

func (s *userService) SearchUsers(ctx context.Context, query string, skip, limit int) ([]*dbmysql.User, error) {
	return s.userRepo.SearchUsers(ctx, query, skip, limit)
}

func (s *userService) RequestConnection(ctx context.Context, requesterID, receiverID string) (*ConnectionResponse, error) {
	if requesterID == receiverID {
		return nil, common.Invalidf("cannot connect to yourself")
	}
	receiver, err := s.userRepo.GetUserByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	requester, err := s.userRepo.GetUserByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	conn := &dbmysql.Connection{
		ID:          uuid.NewString(),
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		Status:      dbmysql.ConnectionStatusPending,
	}
	if err := s.connRepo.CreateRequest(ctx, conn); err != nil {
		return nil, err
	}
	return &ConnectionResponse{Connection: conn, Requester: requester, Receiver: receiver}, nil
}

func (s *userService) RespondToConnection(ctx context.Context, userID, connectionID string, accept bool) (*dbmysql.Connection, error) {
	conn, err := s.connRepo.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if conn.ReceiverID != userID {
		return nil, common.NotFoundf("connection %s", connectionID)
	}
	if conn.Status != dbmysql.ConnectionStatusPending {
		return nil, common.Conflictf("connection request is not pending")
	}

	if accept {
		conn.Status = dbmysql.ConnectionStatusAccepted
	} else {
		conn.Status = dbmysql.ConnectionStatusRejected
	}
	if err := s.connRepo.Update(ctx, conn); err != nil {
		return nil, err
	}
	return conn, nil
}

func (s *userService) ListConnections(ctx context.Context, userID string) ([]*ConnectionResponse, error) {
	conns, err := s.connRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(conns)*2)
	for _, c := range conns {
		ids = append(ids, c.RequesterID, c.ReceiverID)
	}
	users, err := s.userRepo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*ConnectionResponse, 0, len(conns))
	for _, c := range conns {
		out = append(out, &ConnectionResponse{
			Connection: c,
			Requester:  users[c.RequesterID],
			Receiver:   users[c.ReceiverID],
		})
	}
	return out, nil
}
