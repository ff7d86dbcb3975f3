package wizard

import (
	"sync"

	"github.com/google/uuid"
)

// PhotoType identifies how the customer shot their images. Bracketing types
// group several exposures into one billable image.
type PhotoType string

const (
	PhotoTypePhone       PhotoType = "phone"
	PhotoTypeCamera      PhotoType = "camera"
	PhotoTypeBracketing3 PhotoType = "bracketing-3"
	PhotoTypeBracketing5 PhotoType = "bracketing-5"
)

func (p PhotoType) Valid() bool {
	switch p {
	case PhotoTypePhone, PhotoTypeCamera, PhotoTypeBracketing3, PhotoTypeBracketing5:
		return true
	}
	return false
}

// GroupSize returns how many uploaded files make up one billable image.
func (p PhotoType) GroupSize() int {
	switch p {
	case PhotoTypeBracketing3:
		return 3
	case PhotoTypeBracketing5:
		return 5
	}
	return 1
}

// FileRef describes one uploaded file already placed in storage.
type FileRef struct {
	Filename    string
	Size        int64
	MimeType    string
	StoragePath string
	StorageURL  string
}

// Contact holds the free-form contact fields collected on the summary step.
type Contact struct {
	Email           string
	Company         string
	ObjectReference string
	SpecialRequests string
}

// Draft is the in-progress order being assembled across wizard steps. Setters
// never validate cross-field consistency; that is the validation layer's job.
// Every mutation notifies subscribers so derived values can be recomputed.
type Draft struct {
	mu sync.Mutex

	photoType     PhotoType
	files         []FileRef
	packageID     uuid.UUID
	addons        map[uuid.UUID]struct{}
	watermark     *FileRef
	contact       Contact
	termsAccepted bool

	subscribers []func()
}

func NewDraft() *Draft {
	return &Draft{addons: make(map[uuid.UUID]struct{})}
}

// Subscribe registers fn to run after every mutation.
func (d *Draft) Subscribe(fn func()) {
	d.mu.Lock()
	d.subscribers = append(d.subscribers, fn)
	d.mu.Unlock()
}

func (d *Draft) notifyLocked() []func() {
	subs := make([]func(), len(d.subscribers))
	copy(subs, d.subscribers)
	return subs
}

func (d *Draft) mutate(apply func()) {
	d.mu.Lock()
	apply()
	subs := d.notifyLocked()
	d.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

func (d *Draft) SetPhotoType(p PhotoType) {
	d.mutate(func() { d.photoType = p })
}

func (d *Draft) AddFile(f FileRef) {
	d.mutate(func() { d.files = append(d.files, f) })
}

func (d *Draft) RemoveFile(filename string) {
	d.mutate(func() {
		kept := d.files[:0]
		for _, f := range d.files {
			if f.Filename != filename {
				kept = append(kept, f)
			}
		}
		d.files = kept
	})
}

func (d *Draft) SetPackage(id uuid.UUID) {
	d.mutate(func() { d.packageID = id })
}

// AddAddon is idempotent: the selection is a set.
func (d *Draft) AddAddon(id uuid.UUID) {
	d.mutate(func() { d.addons[id] = struct{}{} })
}

func (d *Draft) RemoveAddon(id uuid.UUID) {
	d.mutate(func() { delete(d.addons, id) })
}

func (d *Draft) SetWatermark(f FileRef) {
	d.mutate(func() { wm := f; d.watermark = &wm })
}

func (d *Draft) ClearWatermark() {
	d.mutate(func() { d.watermark = nil })
}

func (d *Draft) SetContact(c Contact) {
	d.mutate(func() { d.contact = c })
}

func (d *Draft) SetTermsAccepted(accepted bool) {
	d.mutate(func() { d.termsAccepted = accepted })
}

// Reset discards all order content. Subscribers stay registered.
func (d *Draft) Reset() {
	d.mutate(func() {
		d.photoType = ""
		d.files = nil
		d.packageID = uuid.Nil
		d.addons = make(map[uuid.UUID]struct{})
		d.watermark = nil
		d.contact = Contact{}
		d.termsAccepted = false
	})
}

// Snapshot is an immutable copy of the draft for validation and pricing.
type Snapshot struct {
	PhotoType     PhotoType
	Files         []FileRef
	PackageID     uuid.UUID
	AddonIDs      []uuid.UUID
	Watermark     *FileRef
	Contact       Contact
	TermsAccepted bool
}

func (d *Draft) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := Snapshot{
		PhotoType:     d.photoType,
		PackageID:     d.packageID,
		Contact:       d.contact,
		TermsAccepted: d.termsAccepted,
	}
	s.Files = make([]FileRef, len(d.files))
	copy(s.Files, d.files)
	for id := range d.addons {
		s.AddonIDs = append(s.AddonIDs, id)
	}
	if d.watermark != nil {
		wm := *d.watermark
		s.Watermark = &wm
	}
	return s
}
