package service

import (
	"context"
	"time"

	"github.com/afterly/afterly/internal/models"
)

type mockProfileRepo struct {
	GetByIDFunc      func(ctx context.Context, id string) (*models.Profile, error)
	GetByClerkIDFunc func(ctx context.Context, clerkUserID string) (*models.Profile, error)
	GetByEmailFunc   func(ctx context.Context, email string) (*models.Profile, error)
	CreateFunc       func(ctx context.Context, p *models.Profile) error
	UpdateFunc       func(ctx context.Context, p *models.Profile) error
	MarkDeceasedFunc func(ctx context.Context, id string, deceasedAt time.Time) error
	DeactivateFunc   func(ctx context.Context, id string) error
}

func (m *mockProfileRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockProfileRepo) GetByClerkID(ctx context.Context, clerkUserID string) (*models.Profile, error) {
	return m.GetByClerkIDFunc(ctx, clerkUserID)
}
func (m *mockProfileRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return m.GetByEmailFunc(ctx, email)
}
func (m *mockProfileRepo) Create(ctx context.Context, p *models.Profile) error {
	return m.CreateFunc(ctx, p)
}
func (m *mockProfileRepo) Update(ctx context.Context, p *models.Profile) error {
	return m.UpdateFunc(ctx, p)
}
func (m *mockProfileRepo) MarkDeceased(ctx context.Context, id string, deceasedAt time.Time) error {
	return m.MarkDeceasedFunc(ctx, id, deceasedAt)
}
func (m *mockProfileRepo) Deactivate(ctx context.Context, id string) error {
	return m.DeactivateFunc(ctx, id)
}

type mockContactRepo struct {
	CreateFunc     func(ctx context.Context, c *models.TrustedContact) error
	ListByUserFunc func(ctx context.Context, userID string) ([]models.TrustedContact, error)
	GetByIDFunc    func(ctx context.Context, userID, id string) (*models.TrustedContact, error)
	CountOwnedFunc func(ctx context.Context, userID string, ids []string) (int, error)
	UpdateFunc     func(ctx context.Context, c *models.TrustedContact) error
	DeleteFunc     func(ctx context.Context, userID, id string) error
}

func (m *mockContactRepo) Create(ctx context.Context, c *models.TrustedContact) error {
	return m.CreateFunc(ctx, c)
}
func (m *mockContactRepo) ListByUser(ctx context.Context, userID string) ([]models.TrustedContact, error) {
	return m.ListByUserFunc(ctx, userID)
}
func (m *mockContactRepo) GetByID(ctx context.Context, userID, id string) (*models.TrustedContact, error) {
	return m.GetByIDFunc(ctx, userID, id)
}
func (m *mockContactRepo) CountOwned(ctx context.Context, userID string, ids []string) (int, error) {
	return m.CountOwnedFunc(ctx, userID, ids)
}
func (m *mockContactRepo) Update(ctx context.Context, c *models.TrustedContact) error {
	return m.UpdateFunc(ctx, c)
}
func (m *mockContactRepo) Delete(ctx context.Context, userID, id string) error {
	return m.DeleteFunc(ctx, userID, id)
}

type mockAccountRepo struct {
	CreateFunc               func(ctx context.Context, a *models.DigitalAccount) error
	GetByIDFunc              func(ctx context.Context, userID, id string) (*models.DigitalAccount, error)
	ListByUserFunc           func(ctx context.Context, userID string) ([]models.DigitalAccount, error)
	ListGrantedToContactFunc func(ctx context.Context, contactID string) ([]models.DigitalAccount, error)
	UpdateFunc               func(ctx context.Context, a *models.DigitalAccount) error
	DeleteFunc               func(ctx context.Context, userID, id string) error
}

func (m *mockAccountRepo) Create(ctx context.Context, a *models.DigitalAccount) error {
	return m.CreateFunc(ctx, a)
}
func (m *mockAccountRepo) GetByID(ctx context.Context, userID, id string) (*models.DigitalAccount, error) {
	return m.GetByIDFunc(ctx, userID, id)
}
func (m *mockAccountRepo) ListByUser(ctx context.Context, userID string) ([]models.DigitalAccount, error) {
	return m.ListByUserFunc(ctx, userID)
}
func (m *mockAccountRepo) ListGrantedToContact(ctx context.Context, contactID string) ([]models.DigitalAccount, error) {
	return m.ListGrantedToContactFunc(ctx, contactID)
}
func (m *mockAccountRepo) Update(ctx context.Context, a *models.DigitalAccount) error {
	return m.UpdateFunc(ctx, a)
}
func (m *mockAccountRepo) Delete(ctx context.Context, userID, id string) error {
	return m.DeleteFunc(ctx, userID, id)
}

type mockDocumentRepo struct {
	CreateFunc               func(ctx context.Context, d *models.Document) error
	GetByIDFunc              func(ctx context.Context, userID, id string) (*models.Document, error)
	ListByUserFunc           func(ctx context.Context, userID string) ([]models.Document, error)
	ListGrantedToContactFunc func(ctx context.Context, contactID string) ([]models.Document, error)
	UpdateFunc               func(ctx context.Context, d *models.Document) error
	DeleteFunc               func(ctx context.Context, userID, id string) error
}

func (m *mockDocumentRepo) Create(ctx context.Context, d *models.Document) error {
	return m.CreateFunc(ctx, d)
}
func (m *mockDocumentRepo) GetByID(ctx context.Context, userID, id string) (*models.Document, error) {
	return m.GetByIDFunc(ctx, userID, id)
}
func (m *mockDocumentRepo) ListByUser(ctx context.Context, userID string) ([]models.Document, error) {
	return m.ListByUserFunc(ctx, userID)
}
func (m *mockDocumentRepo) ListGrantedToContact(ctx context.Context, contactID string) ([]models.Document, error) {
	return m.ListGrantedToContactFunc(ctx, contactID)
}
func (m *mockDocumentRepo) Update(ctx context.Context, d *models.Document) error {
	return m.UpdateFunc(ctx, d)
}
func (m *mockDocumentRepo) Delete(ctx context.Context, userID, id string) error {
	return m.DeleteFunc(ctx, userID, id)
}

type mockMediaRepo struct {
	CreateFolderFunc                func(ctx context.Context, f *models.MediaFolder) error
	GetFolderByIDFunc               func(ctx context.Context, userID, id string) (*models.MediaFolder, error)
	UpdateFolderFunc                func(ctx context.Context, f *models.MediaFolder) error
	DeleteFolderFunc                func(ctx context.Context, userID, id string) error
	ListFoldersByUserFunc           func(ctx context.Context, userID string) ([]models.MediaFolder, error)
	ListFoldersGrantedToContactFunc func(ctx context.Context, contactID string) ([]models.MediaFolder, error)
	CreateItemFunc                  func(ctx context.Context, it *models.MediaItem) error
	GetItemByIDFunc                 func(ctx context.Context, userID, id string) (*models.MediaItem, error)
	ListUnorganizedByUserFunc       func(ctx context.Context, userID string) ([]models.MediaItem, error)
	DeleteItemFunc                  func(ctx context.Context, userID, id string) error
}

func (m *mockMediaRepo) CreateFolder(ctx context.Context, f *models.MediaFolder) error {
	return m.CreateFolderFunc(ctx, f)
}
func (m *mockMediaRepo) GetFolderByID(ctx context.Context, userID, id string) (*models.MediaFolder, error) {
	return m.GetFolderByIDFunc(ctx, userID, id)
}
func (m *mockMediaRepo) UpdateFolder(ctx context.Context, f *models.MediaFolder) error {
	return m.UpdateFolderFunc(ctx, f)
}
func (m *mockMediaRepo) DeleteFolder(ctx context.Context, userID, id string) error {
	return m.DeleteFolderFunc(ctx, userID, id)
}
func (m *mockMediaRepo) ListFoldersByUser(ctx context.Context, userID string) ([]models.MediaFolder, error) {
	return m.ListFoldersByUserFunc(ctx, userID)
}
func (m *mockMediaRepo) ListFoldersGrantedToContact(ctx context.Context, contactID string) ([]models.MediaFolder, error) {
	return m.ListFoldersGrantedToContactFunc(ctx, contactID)
}
func (m *mockMediaRepo) CreateItem(ctx context.Context, it *models.MediaItem) error {
	return m.CreateItemFunc(ctx, it)
}
func (m *mockMediaRepo) GetItemByID(ctx context.Context, userID, id string) (*models.MediaItem, error) {
	return m.GetItemByIDFunc(ctx, userID, id)
}
func (m *mockMediaRepo) ListUnorganizedByUser(ctx context.Context, userID string) ([]models.MediaItem, error) {
	return m.ListUnorganizedByUserFunc(ctx, userID)
}
func (m *mockMediaRepo) DeleteItem(ctx context.Context, userID, id string) error {
	return m.DeleteItemFunc(ctx, userID, id)
}

type mockGrantRepo struct {
	GrantFunc          func(ctx context.Context, kind models.ResourceKind, resourceID string, contactIDs []string) error
	RevokeFunc         func(ctx context.Context, kind models.ResourceKind, resourceID, contactID string) error
	ReplaceAllFunc     func(ctx context.Context, kind models.ResourceKind, resourceID string, contactIDs []string) error
	ListContactIDsFunc func(ctx context.Context, kind models.ResourceKind, resourceID string) ([]string, error)
}

func (m *mockGrantRepo) Grant(ctx context.Context, kind models.ResourceKind, resourceID string, contactIDs []string) error {
	return m.GrantFunc(ctx, kind, resourceID, contactIDs)
}
func (m *mockGrantRepo) Revoke(ctx context.Context, kind models.ResourceKind, resourceID, contactID string) error {
	return m.RevokeFunc(ctx, kind, resourceID, contactID)
}
func (m *mockGrantRepo) ReplaceAll(ctx context.Context, kind models.ResourceKind, resourceID string, contactIDs []string) error {
	return m.ReplaceAllFunc(ctx, kind, resourceID, contactIDs)
}
func (m *mockGrantRepo) ListContactIDs(ctx context.Context, kind models.ResourceKind, resourceID string) ([]string, error) {
	return m.ListContactIDsFunc(ctx, kind, resourceID)
}

type mockTokenRepo struct {
	GetByTokenFunc    func(ctx context.Context, token string) (*models.LegacyAccessToken, error)
	GetByContactFunc  func(ctx context.Context, userID, contactID string) (*models.LegacyAccessToken, error)
	CreateFunc        func(ctx context.Context, t *models.LegacyAccessToken) error
	TouchLastUsedFunc func(ctx context.Context, id string, at time.Time) error
}

func (m *mockTokenRepo) GetByToken(ctx context.Context, token string) (*models.LegacyAccessToken, error) {
	return m.GetByTokenFunc(ctx, token)
}
func (m *mockTokenRepo) GetByContact(ctx context.Context, userID, contactID string) (*models.LegacyAccessToken, error) {
	return m.GetByContactFunc(ctx, userID, contactID)
}
func (m *mockTokenRepo) Create(ctx context.Context, t *models.LegacyAccessToken) error {
	return m.CreateFunc(ctx, t)
}
func (m *mockTokenRepo) TouchLastUsed(ctx context.Context, id string, at time.Time) error {
	return m.TouchLastUsedFunc(ctx, id, at)
}

type mockInvitationRepo struct {
	ExistsFunc func(ctx context.Context, email string) (bool, error)
	CreateFunc func(ctx context.Context, inv *models.PendingInvitation) error
}

func (m *mockInvitationRepo) Exists(ctx context.Context, email string) (bool, error) {
	return m.ExistsFunc(ctx, email)
}
func (m *mockInvitationRepo) Create(ctx context.Context, inv *models.PendingInvitation) error {
	return m.CreateFunc(ctx, inv)
}

// activeProfileRepo returns a profile repo whose GetByClerkID always yields an
// ACTIVE profile with the given internal id.
func activeProfileRepo(id string) *mockProfileRepo {
	return &mockProfileRepo{
		GetByClerkIDFunc: func(ctx context.Context, clerkUserID string) (*models.Profile, error) {
			return &models.Profile{ID: id, ClerkUserID: clerkUserID, Status: models.StatusActive}, nil
		},
	}
}
