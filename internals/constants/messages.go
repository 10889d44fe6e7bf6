package constants

// Pesan respon HTTP absensi (dipakai klien apa adanya, jangan diubah)
const (
	MsgCheckedIn          = "Checked in"
	MsgAlreadyCheckedIn   = "Already checked in today"
	MsgCheckedOut         = "Checked out"
	MsgNoCheckInFound     = "No check-in found for today"
	MsgAlreadyCheckedOut  = "Already checked out today"
	MsgCheckInFieldsReq   = "Latitude, longitude, and photo are required"
	MsgAccessDenied       = "Access denied"
	MsgInvalidCredentials = "Invalid credentials"
	MsgServerError        = "Server error"
)
