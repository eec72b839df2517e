package types

import "testing"

func validAssets() GeneratedAssets {
	return GeneratedAssets{
		InputType: InputYouTube,
		Source:    "https://www.youtube.com/watch?v=abc123",
		Summary:   "A short summary.",
		VideoClips: []VideoClip{
			{ID: "c1", Title: "Opening hook", StartTime: 0, EndTime: 32.5, ViralityScore: 88},
			{ID: "c2", Title: "Key insight", StartTime: 120, EndTime: 155, ViralityScore: 73},
		},
		Audiograms: []Audiogram{
			{ID: "a1", Title: "Best quote", StartTime: 45, EndTime: 70},
		},
		SocialPosts: []SocialPost{
			{ID: "p1", Platform: PlatformLinkedIn, Content: "Post body"},
			{ID: "p2", Platform: PlatformX, Content: "Short post"},
			{ID: "p3", Platform: PlatformInstagram, Content: "Caption"},
		},
	}
}

func TestValidateAcceptsWellFormedAssets(t *testing.T) {
	a := validAssets()
	if err := a.Validate(); err != nil {
		t.Fatalf("expected valid assets, got %v", err)
	}
}

func TestValidateRejectsBadClipRanges(t *testing.T) {
	cases := []struct {
		name       string
		start, end float64
	}{
		{"negative start", -1, 10},
		{"zero length", 30, 30},
		{"end before start", 50, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := validAssets()
			a.VideoClips[0].StartTime = tc.start
			a.VideoClips[0].EndTime = tc.end
			if err := a.Validate(); err == nil {
				t.Fatalf("expected error for range [%v, %v]", tc.start, tc.end)
			}
		})
	}
}

func TestValidateRejectsBadAudiogramRange(t *testing.T) {
	a := validAssets()
	a.Audiograms[0].EndTime = a.Audiograms[0].StartTime
	if err := a.Validate(); err == nil {
		t.Fatal("expected error for zero-length audiogram")
	}
}

func TestValidateRejectsUnknownPlatform(t *testing.T) {
	a := validAssets()
	a.SocialPosts[1].Platform = "Friendster"
	if err := a.Validate(); err == nil {
		t.Fatal("expected error for unknown platform")
	}
}

func TestSanitizedStripsCredentialFields(t *testing.T) {
	u := User{
		ID:                "u1",
		Email:             "user@example.com",
		PasswordHash:      "$2a$10$abcdefg",
		Verified:          true,
		VerificationToken: "verify_xyz",
	}
	s := u.Sanitized()
	if s.PasswordHash != "" || s.VerificationToken != "" {
		t.Fatal("sanitized user must not carry credential fields")
	}
	if s.ID != u.ID || s.Email != u.Email || !s.Verified {
		t.Fatal("sanitized user must keep identity fields")
	}
}
