package sandbox

import (
	"sort"
	"sync"
	"time"
)

// accountID is the fixed account every sandbox resource belongs to.
const accountID int64 = 1

// localIP is the delivery-side address reported on every message.
const localIP = "10.0.0.1"

type subAccount struct {
	ID      int64     `json:"id"`
	Name    string    `json:"name"`
	APIKey  string    `json:"api_key"`
	Type    int       `json:"type"`
	Blocked bool      `json:"blocked"`
	Created time.Time `json:"created"`
}

type webhook struct {
	ID           int64     `json:"id"`
	URL          string    `json:"url"`
	Enabled      bool      `json:"enabled"`
	Secret       string    `json:"secret,omitempty"`
	Processed    bool      `json:"processed"`
	Delivered    bool      `json:"delivered"`
	Dropped      bool      `json:"dropped"`
	SoftBounced  bool      `json:"soft_bounced"`
	HardBounced  bool      `json:"hard_bounced"`
	Opened       bool      `json:"opened"`
	Clicked      bool      `json:"clicked"`
	Unsubscribed bool      `json:"unsubscribed"`
	Spam         bool      `json:"spam"`
	Created      time.Time `json:"created"`
	Updated      time.Time `json:"updated"`
}

type dkimRecord struct {
	Selector  string `json:"selector"`
	TextValue string `json:"text_value"`
}

type domain struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	Verified bool        `json:"verified"`
	DKIM     *dkimRecord `json:"dkim,omitempty"`
	Created  time.Time   `json:"created"`

	ownerID int64
}

type emailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type recipient struct {
	Email        string            `json:"email"`
	Name         string            `json:"name,omitempty"`
	CustomFields map[string]string `json:"custom_fields,omitempty"`
}

type message struct {
	MessageID    string        `json:"message_id"`
	AccountID    int64         `json:"account_id"`
	SubAccountID int64         `json:"sub_account_id"`
	IPID         int64         `json:"ip_id"`
	PublicIP     string        `json:"public_ip"`
	LocalIP      string        `json:"local_ip"`
	EmailType    string        `json:"email_type"`
	SubmittedAt  time.Time     `json:"submitted_at"`
	From         *emailAddress `json:"from,omitempty"`
	To           *recipient    `json:"to,omitempty"`
	Subject      string        `json:"subject,omitempty"`
	IPPool       string        `json:"ip_pool,omitempty"`
	Attempt      int           `json:"attempt,omitempty"`
}

type ipEntry struct {
	ID                 int64     `json:"id"`
	PublicIP           string    `json:"public_ip"`
	ReverseDNSHostname string    `json:"reverse_dns_hostname,omitempty"`
	Created            time.Time `json:"created"`
}

type ipPool struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	RoutingStrategy int       `json:"routing_strategy"`
	IPs             []ipEntry `json:"ips,omitempty"`
}

// memoryStore holds all sandbox state behind one mutex. Handlers are
// short and touch the store once, so a single lock is enough.
type memoryStore struct {
	mu sync.Mutex

	nextID      int64
	subAccounts map[int64]subAccount
	webhooks    map[int64]webhook
	domains     map[int64]domain
	messages    map[string]message
	ips         []ipEntry
	pools       map[int64]ipPool

	// sendsByDay counts accepted messages per civil date (YYYY-MM-DD)
	// and sub-account, the material for the stats endpoints.
	sendsByDay map[string]map[int64]int

	now func() time.Time
}

// newMemoryStore returns an empty store pre-loaded with two IPs so the
// pool endpoints have material from the first request.
func newMemoryStore(now func() time.Time) *memoryStore {
	st := &memoryStore{
		subAccounts: make(map[int64]subAccount),
		webhooks:    make(map[int64]webhook),
		domains:     make(map[int64]domain),
		messages:    make(map[string]message),
		pools:       make(map[int64]ipPool),
		sendsByDay:  make(map[string]map[int64]int),
		now:         now,
	}
	st.addIP("198.51.100.1", "mail1.sandbox.sendpost.io")
	st.addIP("198.51.100.2", "mail2.sandbox.sendpost.io")
	return st
}

// allocID hands out monotonic ids across all numeric resources.
// Callers must hold mu.
func (st *memoryStore) allocID() int64 {
	st.nextID++
	return st.nextID
}

func (st *memoryStore) addIP(publicIP, reverseDNS string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.ips = append(st.ips, ipEntry{
		ID:                 st.allocID(),
		PublicIP:           publicIP,
		ReverseDNSHostname: reverseDNS,
		Created:            st.now(),
	})
}

// findSubAccountByKey resolves an API key to its sub-account.
func (st *memoryStore) findSubAccountByKey(key string) (subAccount, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, sa := range st.subAccounts {
		if sa.APIKey == key {
			return sa, true
		}
	}
	return subAccount{}, false
}

// recordSend bumps the day's send counter. Callers must hold mu.
func (st *memoryStore) recordSend(day string, subAccountID int64) {
	bysub := st.sendsByDay[day]
	if bysub == nil {
		bysub = make(map[int64]int)
		st.sendsByDay[day] = bysub
	}
	bysub[subAccountID]++
}

// sendCount returns the day's sends for one sub-account, or for the
// whole account when subAccountID is zero. Callers must hold mu.
func (st *memoryStore) sendCount(day string, subAccountID int64) int {
	bysub := st.sendsByDay[day]
	if bysub == nil {
		return 0
	}
	if subAccountID == 0 {
		total := 0
		for _, n := range bysub {
			total += n
		}
		return total
	}
	return bysub[subAccountID]
}

func sortedSubAccounts(m map[int64]subAccount) []subAccount {
	out := make([]subAccount, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedWebhooks(m map[int64]webhook) []webhook {
	out := make([]webhook, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedDomains(m map[int64]domain, ownerID int64) []domain {
	out := make([]domain, 0, len(m))
	for _, v := range m {
		if v.ownerID == ownerID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedPools(m map[int64]ipPool) []ipPool {
	out := make([]ipPool, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
