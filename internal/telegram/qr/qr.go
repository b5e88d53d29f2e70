package qr

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// InvitePNG renders a Telegram invite link as a PNG QR code. The size is
// capped so a bad query parameter cannot ask for a huge allocation.
func InvitePNG(inviteURL string, size int) ([]byte, error) {
	if !strings.HasPrefix(inviteURL, "https://t.me/") {
		return nil, fmt.Errorf("invite URL must point at t.me: %q", inviteURL)
	}
	if size < 64 || size > 1024 {
		size = 256
	}
	return qrcode.Encode(inviteURL, qrcode.Medium, size)
}
