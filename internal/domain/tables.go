package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysUser{},
	&SysOprLog{},
	// Catalog
	&Treatment{},
	&Product{},
	&ProductReview{},
	// Commerce
	&Booking{},
	&Order{},
	&OrderItem{},
	// Content
	&Testimonial{},
	&GalleryItem{},
	&InstagramPost{},
}
