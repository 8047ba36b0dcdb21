// Package models defines the core data structures for owner profiles,
// trusted contacts, shareable resources, and legacy access tokens.
package models

import "time"

// ProfileStatus describes the lifecycle state of an owner profile.
type ProfileStatus string

const (
	// StatusActive is the normal state: the owner may mutate their data.
	StatusActive ProfileStatus = "ACTIVE"
	// StatusInactive marks a profile deactivated by the insurance feed.
	StatusInactive ProfileStatus = "INACTIVE"
	// StatusDeceased marks a profile locked by the death trigger.
	StatusDeceased ProfileStatus = "DECEASED"
)

// Profile represents one owner and the root of their resource tree.
type Profile struct {
	// ID is the unique identifier for the profile.
	ID string `json:"id"`
	// ClerkUserID is the stable identifier assigned by the external identity provider.
	ClerkUserID string `json:"clerkUserId"`
	// FullName is the owner's display name.
	FullName string `json:"fullName"`
	// Email is the owner's contact email.
	Email string `json:"email"`
	// Phone is an optional contact phone number.
	Phone string `json:"phone,omitempty"`
	// DateOfBirth is optional.
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	// CountryOfResidence is optional.
	CountryOfResidence string `json:"countryOfResidence,omitempty"`
	// Status is the lifecycle state. DeceasedAt is set iff Status is DECEASED.
	Status ProfileStatus `json:"status"`
	// DeceasedAt records when the death trigger fired.
	DeceasedAt *time.Time `json:"deceasedAt,omitempty"`
	// OnboardingComplete reports whether the owner finished the onboarding wizard.
	OnboardingComplete bool      `json:"onboardingComplete"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ContactRole determines post-mortem visibility for a trusted contact.
type ContactRole string

const (
	// RoleExecutor grants structural visibility into everything the owner has.
	RoleExecutor ContactRole = "EXECUTOR"
	// RoleRecipient limits visibility to explicitly shared resources.
	RoleRecipient ContactRole = "RECIPIENT"
)

// RelationshipType is informational categorization of a contact.
type RelationshipType string

const (
	RelationshipFamily   RelationshipType = "FAMILY"
	RelationshipFriend   RelationshipType = "FRIEND"
	RelationshipCoworker RelationshipType = "COWORKER"
	RelationshipLegal    RelationshipType = "LEGAL"
	RelationshipOther    RelationshipType = "OTHER"
)

// TrustedContact is a person designated to receive post-mortem access.
type TrustedContact struct {
	ID           string           `json:"id"`
	UserID       string           `json:"userId"`
	Name         string           `json:"name"`
	Email        string           `json:"email,omitempty"`
	Phone        string           `json:"phone,omitempty"`
	Relationship RelationshipType `json:"relationship"`
	Role         ContactRole      `json:"role"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// AccountCategory classifies a digital account.
type AccountCategory string

const (
	CategorySocialMedia   AccountCategory = "SOCIAL_MEDIA"
	CategoryEmail         AccountCategory = "EMAIL_COMMUNICATION"
	CategoryFinancial     AccountCategory = "FINANCIAL"
	CategoryCrypto        AccountCategory = "CRYPTO"
	CategorySubscriptions AccountCategory = "SUBSCRIPTIONS"
	CategoryOther         AccountCategory = "OTHER"
)

// ActionOnDeath instructs what should happen to an account after death.
type ActionOnDeath string

const (
	ActionDelete      ActionOnDeath = "DELETE"
	ActionTransfer    ActionOnDeath = "TRANSFER"
	ActionMemorialize ActionOnDeath = "MEMORIALIZE"
)

// DigitalAccount is an online account inventoried by the owner.
type DigitalAccount struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	Category     AccountCategory `json:"category"`
	PlatformName string          `json:"platformName"`
	PlatformIcon string          `json:"platformIcon,omitempty"`
	Username     string          `json:"username,omitempty"`
	Email        string          `json:"email,omitempty"`
	// ActionOnDeath is the post-mortem instruction for this account.
	ActionOnDeath ActionOnDeath `json:"actionOnDeath"`
	// TransferToID references an owned TrustedContact; required when ActionOnDeath is TRANSFER.
	TransferToID string    `json:"transferToId,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Document is an uploaded file with metadata.
type Document struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	FileURL     string `json:"fileUrl"`
	FileType    string `json:"fileType"`
	FileSize    int64  `json:"fileSize"`
	// IsWill flags the owner's will. Uniqueness is not enforced.
	IsWill    bool      `json:"isWill"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MediaFolder groups media items.
type MediaFolder struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	// Items is populated on listing and legacy resolution.
	Items []MediaItem `json:"items,omitempty"`
}

// MediaItem is an uploaded photo or video. FolderID is empty for unorganized items.
type MediaItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	FolderID  string    `json:"folderId,omitempty"`
	Name      string    `json:"name"`
	FileURL   string    `json:"fileUrl"`
	FileType  string    `json:"fileType"`
	FileSize  int64     `json:"fileSize"`
	CreatedAt time.Time `json:"createdAt"`
}

// ResourceKind identifies which shareable resource a grant refers to.
type ResourceKind string

const (
	KindDocument    ResourceKind = "document"
	KindMediaFolder ResourceKind = "media_folder"
	KindAccount     ResourceKind = "account"
)

// LegacyAccessToken is the bearer secret mailed to a trusted contact.
// One exists per (profile, contact) pair once the death trigger has run.
type LegacyAccessToken struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	ContactID  string     `json:"contactId"`
	Token      string     `json:"token"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// PendingInvitation is an insurance-fed signup invitation keyed by email.
type PendingInvitation struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	InsuranceRef string    `json:"insuranceRef,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
