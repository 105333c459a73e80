// Package profile holds the user profile and the linked cloud account.
package profile

import (
	"strings"
	"sync"

	"tableflip.dev/nova/pkg/timeutil"
)

// SocialLink is a labelled external profile.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// CloudAccount is the optional linked sync account.
type CloudAccount struct {
	ID           string             `json:"id"`
	Email        string             `json:"email"`
	Verified     bool               `json:"verified"`
	LastSyncedAt timeutil.Timestamp `json:"lastSyncedAt"`
}

// Profile is the single user of the application.
type Profile struct {
	Name      string        `json:"name"`
	Bio       string        `json:"bio"`
	AvatarURL *string       `json:"avatarUrl"`
	Socials   []SocialLink  `json:"socials"`
	Account   *CloudAccount `json:"googleAccount,omitempty"`
}

// Default is the profile used on first run.
func Default() Profile {
	return Profile{
		Name:    "Jane Doe",
		Bio:     "Visionary Mindset",
		Socials: []SocialLink{},
	}
}

// Clone returns a deep copy.
func (p Profile) Clone() Profile {
	c := p
	if p.AvatarURL != nil {
		v := *p.AvatarURL
		c.AvatarURL = &v
	}
	c.Socials = append([]SocialLink{}, p.Socials...)
	if p.Account != nil {
		a := *p.Account
		c.Account = &a
	}
	return c
}

// Initial is the first letter of the name, used when there is no avatar.
func (p Profile) Initial() string {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return "?"
	}
	return strings.ToUpper(string([]rune(name)[0]))
}

// Store owns the profile. Every mutation bumps the revision so the owner can
// detect changes and schedule a flush.
type Store struct {
	mu       sync.RWMutex
	profile  Profile
	rev      uint64
	onChange func()
}

// NewStore seeds a store with p.
func NewStore(p Profile) *Store {
	return &Store{profile: p.Clone()}
}

// Get returns a copy of the profile.
func (s *Store) Get() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Clone()
}

// OnChange registers fn to run after every mutation. fn runs under the store
// lock and must not call back into the store.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Revision increases on every mutation.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rev
}

// ReplaceAt swaps the whole profile for one read back from disk if nothing
// changed since rev. It does not call OnChange.
func (s *Store) ReplaceAt(rev uint64, p Profile) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rev != rev {
		return false
	}
	s.profile = p.Clone()
	s.rev++
	return true
}

// SetName updates the display name.
func (s *Store) SetName(name string) {
	s.update(func(p *Profile) bool {
		p.Name = name
		return true
	})
}

// SetBio updates the short bio.
func (s *Store) SetBio(bio string) {
	s.update(func(p *Profile) bool {
		p.Bio = bio
		return true
	})
}

// SetAvatar sets the avatar payload; empty clears it.
func (s *Store) SetAvatar(payload string) {
	s.update(func(p *Profile) bool {
		if payload == "" {
			p.AvatarURL = nil
			return true
		}
		p.AvatarURL = &payload
		return true
	})
}

// AddSocial appends a social link. Blank urls are ignored.
func (s *Store) AddSocial(platform, url string) bool {
	url = strings.TrimSpace(url)
	if url == "" {
		return false
	}
	s.update(func(p *Profile) bool {
		p.Socials = append(p.Socials, SocialLink{Platform: strings.TrimSpace(platform), URL: url})
		return true
	})
	return true
}

// RemoveSocial deletes the link at index i.
func (s *Store) RemoveSocial(i int) bool {
	return s.update(func(p *Profile) bool {
		if i < 0 || i >= len(p.Socials) {
			return false
		}
		p.Socials = append(p.Socials[:i:i], p.Socials[i+1:]...)
		return true
	})
}

// Link attaches a cloud account.
func (s *Store) Link(acct CloudAccount) {
	s.update(func(p *Profile) bool {
		p.Account = &acct
		return true
	})
}

// Unlink clears the cloud account. It reports false when already logged out.
func (s *Store) Unlink() bool {
	return s.update(func(p *Profile) bool {
		if p.Account == nil {
			return false
		}
		p.Account = nil
		return true
	})
}

// MarkSynced stamps the linked account. It reports false when logged out.
func (s *Store) MarkSynced(at timeutil.Timestamp) bool {
	return s.update(func(p *Profile) bool {
		if p.Account == nil {
			return false
		}
		p.Account.LastSyncedAt = at
		return true
	})
}

// update applies fn and, when it reports a change, bumps the revision and
// notifies the listener.
func (s *Store) update(fn func(*Profile) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := fn(&s.profile)
	if changed {
		s.rev++
		if s.onChange != nil {
			s.onChange()
		}
	}
	return changed
}
