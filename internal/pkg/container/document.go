package container

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/google/uuid"
)

// Rect задает прямоугольник страницы в единицах документа
type Rect struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ImageResource - встроенное растровое изображение документа.
// Ресурс может использоваться сразу на нескольких страницах.
type ImageResource struct {
	ID         string
	Data       []byte
	Width      int
	Height     int
	Components int // 1 = gray, 3 = RGB, 4 = CMYK или RGB+alpha
}

func (r *ImageResource) Size() int {
	return len(r.Data)
}

// Placement - видимое размещение ресурса на странице
type Placement struct {
	ResourceID string
	Rect       Rect
}

type Page struct {
	doc        *Document
	rect       Rect
	refs       []string // упорядоченный список id ресурсов страницы
	placements []Placement
}

func (p *Page) Rect() Rect {
	return p.rect
}

// Images возвращает ресурсы страницы в порядке их следования.
// Каждый вызов делает свежий снимок списка.
func (p *Page) Images() []*ImageResource {
	images := make([]*ImageResource, 0, len(p.refs))
	for _, id := range p.refs {
		if res, ok := p.doc.resources[id]; ok {
			images = append(images, res)
		}
	}
	return images
}

func (p *Page) Placements() []Placement {
	out := make([]Placement, len(p.placements))
	copy(out, p.placements)
	return out
}

// PlaceImage размещает уже зарегистрированный ресурс на странице
func (p *Page) PlaceImage(id string, rect Rect) error {
	if _, ok := p.doc.resources[id]; !ok {
		return fmt.Errorf("resource %s is not registered in the document", id)
	}
	p.refs = append(p.refs, id)
	p.placements = append(p.placements, Placement{ResourceID: id, Rect: rect})
	return nil
}

// InsertImage регистрирует новые JPEG-байты как ресурс документа и
// размещает их на странице в заданном прямоугольнике
func (p *Page) InsertImage(rect Rect, jpegData []byte) error {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(jpegData))
	if err != nil {
		return fmt.Errorf("insert image: %w", err)
	}

	res := &ImageResource{
		ID:         uuid.New().String(),
		Data:       jpegData,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Components: 3,
	}
	p.doc.resources[res.ID] = res

	// Непрозрачное изображение на весь прямоугольник страницы перекрывает
	// все, что было размещено раньше: видимым остается только оно
	if rect == p.rect {
		p.placements = p.placements[:0]
	}

	p.refs = append(p.refs, res.ID)
	p.placements = append(p.placements, Placement{ResourceID: res.ID, Rect: rect})
	return nil
}

// RemoveImage убирает все ссылки страницы на ресурс.
// Сам ресурс остается в графе документа до сборки мусора.
func (p *Page) RemoveImage(id string) {
	refs := p.refs[:0]
	for _, ref := range p.refs {
		if ref != id {
			refs = append(refs, ref)
		}
	}
	p.refs = refs

	placements := p.placements[:0]
	for _, pl := range p.placements {
		if pl.ResourceID != id {
			placements = append(placements, pl)
		}
	}
	p.placements = placements
}

// Document - декодированное представление постраничного файла.
// Граф объектов мутируется на месте внутри одного вызова движка.
type Document struct {
	pages     []*Page
	resources map[string]*ImageResource
}

func NewDocument() *Document {
	return &Document{resources: make(map[string]*ImageResource)}
}

func (d *Document) AddPage(rect Rect) *Page {
	page := &Page{doc: d, rect: rect}
	d.pages = append(d.pages, page)
	return page
}

func (d *Document) Pages() []*Page {
	return d.pages
}

// AddImage регистрирует ресурс с известными параметрами без размещения
func (d *Document) AddImage(data []byte, width, height, components int) *ImageResource {
	res := &ImageResource{
		ID:         uuid.New().String(),
		Data:       data,
		Width:      width,
		Height:     height,
		Components: components,
	}
	d.resources[res.ID] = res
	return res
}

func (d *Document) Resource(id string) (*ImageResource, bool) {
	res, ok := d.resources[id]
	return res, ok
}

// ExtractRawImage возвращает сырые закодированные байты ресурса
func (d *Document) ExtractRawImage(id string) ([]byte, error) {
	res, ok := d.resources[id]
	if !ok {
		return nil, fmt.Errorf("resource %s not found", id)
	}
	return res.Data, nil
}

// ResourceCount возвращает число ресурсов в графе документа
func (d *Document) ResourceCount() int {
	return len(d.resources)
}

// garbageCollect удаляет ресурсы, не участвующие ни в одном видимом
// размещении, и подчищает осиротевшие ссылки страниц. Идентичность
// ресурсов в графе сохраняется до этого шага.
func (d *Document) garbageCollect() {
	referenced := make(map[string]bool)
	for _, page := range d.pages {
		for _, pl := range page.placements {
			referenced[pl.ResourceID] = true
		}
	}

	for id := range d.resources {
		if !referenced[id] {
			delete(d.resources, id)
		}
	}

	for _, page := range d.pages {
		refs := page.refs[:0]
		for _, id := range page.refs {
			if _, ok := d.resources[id]; ok {
				refs = append(refs, id)
			}
		}
		page.refs = refs
	}
}
