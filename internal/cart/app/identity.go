package app

// Identity says whose cart a call operates on. Exactly one of the two ids is
// set; routing between the guest store and the remote store hangs off it.
type Identity struct {
	AccountID string
	GuestID   string
}

func Guest(guestID string) Identity {
	return Identity{GuestID: guestID}
}

func Account(accountID string) Identity {
	return Identity{AccountID: accountID}
}

func (id Identity) IsGuest() bool {
	return id.AccountID == ""
}

// key is the serialization key for the per-identity mutation lock and the
// guest store namespace.
func (id Identity) key() string {
	if id.IsGuest() {
		return "apex-cart:" + id.GuestID
	}
	return "account:" + id.AccountID
}
