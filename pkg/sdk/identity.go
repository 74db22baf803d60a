package sdk

// SubjectType is the broad account category reported by the identity
// endpoint. Admins carry their concrete role in the subject payload;
// clients and users map one-to-one.
type SubjectType string

const (
	SubjectAdmin  SubjectType = "admin"
	SubjectClient SubjectType = "client"
	SubjectUser   SubjectType = "user"
)

// Subject is the profile payload attached to an identity. The backend
// returns different field sets per subject type; absent fields stay zero.
type Subject struct {
	ID            string `json:"_id,omitempty"`
	Email         string `json:"email,omitempty"`
	Role          Role   `json:"role,omitempty"`
	FullName      string `json:"fullName,omitempty"`
	BusinessName  string `json:"businessName,omitempty"`
	BusinessType  string `json:"businessType,omitempty"`
	MobileNumber  string `json:"mobileNumber,omitempty"`
	ContactNumber string `json:"contactNumber,omitempty"`
	WebsiteURL    string `json:"websiteUrl,omitempty"`
	GSTNumber     string `json:"gstNumber,omitempty"`
	PANNumber     string `json:"panNumber,omitempty"`
	Address       string `json:"address,omitempty"`
	City          string `json:"city,omitempty"`
	Pincode       string `json:"pincode,omitempty"`
	LogoURL       string `json:"logoUrl,omitempty"`
	Approved      bool   `json:"approved,omitempty"`
}

// Identity is the answer to "who am I" for one credential.
type Identity struct {
	SubjectType SubjectType `json:"subjectType"`
	Subject     Subject     `json:"subject"`
}

// EffectiveRole derives the credential role from an identity: admins
// report their concrete role (super_admin or admin), clients and users
// are their own role. A nil identity resolves to "".
func (id *Identity) EffectiveRole() Role {
	if id == nil {
		return ""
	}
	switch id.SubjectType {
	case SubjectAdmin:
		if id.Subject.Role != "" {
			return id.Subject.Role
		}
		return RoleAdmin
	case SubjectClient:
		return RoleClient
	case SubjectUser:
		return RoleUser
	}
	return ""
}
