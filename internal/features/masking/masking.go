package masking

import "staff-acl/internal/features/level"

func maskOptional(v *string, transform func(string) string) *string {
	if v == nil {
		return nil
	}
	out := transform(*v)
	return &out
}

// Apply returns a copy of view with every field the grant sets to NO replaced.
// Strings go through their transform, everything else is nulled. A nil grant
// means the staff member is unrestricted and view is returned as is.
func Apply(view CustomerView, g *level.LevelGrant) CustomerView {
	if g == nil {
		return view
	}

	out := view
	if g.Hides(level.FieldCustomerName) {
		out.FullName = MaskName(view.FullName)
	}
	if g.Hides(level.FieldCustomerPhone) {
		out.Phone = MaskPhone(view.Phone)
	}
	if g.Hides(level.FieldCustomerEmail) {
		out.Email = maskOptional(view.Email, MaskEmail)
	}
	if g.Hides(level.FieldCustomerAddress) {
		out.Address = maskOptional(view.Address, MaskAddress)
	}
	if g.Hides(level.FieldCustomerNotes) {
		out.Notes = maskOptional(view.Notes, MaskText)
	}
	if g.Hides(level.FieldCustomerDob) {
		out.Dob = nil
	}
	if g.Hides(level.FieldCustomerGender) {
		out.Gender = nil
	}
	if g.Hides(level.FieldCustomerTotalSpent) {
		out.TotalSpent = nil
	}
	if g.Hides(level.FieldCustomerTotalPoints) {
		out.TotalPoints = nil
	}
	if g.Hides(level.FieldCustomerTier) {
		out.Tier = nil
	}
	if g.Hides(level.FieldCustomerVipStatus) {
		out.VipStatus = nil
	}
	return out
}

func ToBasicView(view CustomerView) BasicView {
	basic := BasicView{
		ID:       view.ID,
		FullName: view.FullName,
		Phone:    PublicPhone(view.Phone),
	}
	if view.Email != nil {
		basic.Email = PublicEmail(*view.Email)
	}
	return basic
}
