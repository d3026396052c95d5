package griduigtk

/*
#cgo pkg-config: gtk+-3.0 pangocairo
#include <stdlib.h>
#include <gtk/gtk.h>
#include <pango/pangocairo.h>

// Check if a font family is available via Pango
static int font_family_exists(const char *family_name) {
    PangoFontMap *font_map = pango_cairo_font_map_get_default();
    if (!font_map) return 0;

    PangoFontFamily **families;
    int n_families;
    pango_font_map_list_families(font_map, &families, &n_families);

    int found = 0;
    for (int i = 0; i < n_families; i++) {
        const char *name = pango_font_family_get_name(families[i]);
        if (g_ascii_strcasecmp(name, family_name) == 0) {
            found = 1;
            break;
        }
    }
    g_free(families);
    return found;
}

// Render text at the current point in pixel units
static void pango_render_text(cairo_t *cr, const char *text, const char *font_family,
                              int pixel_size, double r, double g, double b) {
    PangoLayout *layout = pango_cairo_create_layout(cr);

    PangoFontDescription *desc = pango_font_description_new();
    pango_font_description_set_family(desc, font_family);
    pango_font_description_set_absolute_size(desc, pixel_size * PANGO_SCALE);

    pango_layout_set_font_description(layout, desc);
    pango_layout_set_text(layout, text, -1);

    cairo_set_source_rgb(cr, r, g, b);
    pango_cairo_show_layout(cr, layout);

    pango_font_description_free(desc);
    g_object_unref(layout);
}

// Get the logical pixel size of text (creates its own temp surface)
static void pango_text_size_standalone(const char *text, const char *font_family,
                                       int pixel_size, int *out_width, int *out_height) {
    cairo_surface_t *surface = cairo_image_surface_create(CAIRO_FORMAT_ARGB32, 1, 1);
    cairo_t *cr = cairo_create(surface);

    PangoLayout *layout = pango_cairo_create_layout(cr);

    PangoFontDescription *desc = pango_font_description_new();
    pango_font_description_set_family(desc, font_family);
    pango_font_description_set_absolute_size(desc, pixel_size * PANGO_SCALE);

    pango_layout_set_font_description(layout, desc);
    pango_layout_set_text(layout, text, -1);
    pango_layout_get_pixel_size(layout, out_width, out_height);

    pango_font_description_free(desc);
    g_object_unref(layout);

    cairo_destroy(cr);
    cairo_surface_destroy(surface);
}
*/
import "C"

import (
	"unsafe"

	"github.com/gotk3/gotk3/cairo"
)

// fontFamilyExists reports whether Pango knows the family
func fontFamilyExists(family string) bool {
	cFont := C.CString(family)
	defer C.free(unsafe.Pointer(cFont))
	return C.font_family_exists(cFont) != 0
}

// pangoRenderText draws text with its layout's top-left at the current point.
func pangoRenderText(cr *cairo.Context, text, fontFamily string, pixelSize int, r, g, b float64) {
	cText := C.CString(text)
	cFont := C.CString(fontFamily)
	defer C.free(unsafe.Pointer(cText))
	defer C.free(unsafe.Pointer(cFont))

	crNative := (*C.cairo_t)(unsafe.Pointer(cr.Native()))
	C.pango_render_text(crNative, cText, cFont, C.int(pixelSize), C.double(r), C.double(g), C.double(b))
}

// pangoTextSize measures text without a drawing context
func pangoTextSize(text, fontFamily string, pixelSize int) (width, height int) {
	cText := C.CString(text)
	cFont := C.CString(fontFamily)
	defer C.free(unsafe.Pointer(cText))
	defer C.free(unsafe.Pointer(cFont))

	var cWidth, cHeight C.int
	C.pango_text_size_standalone(cText, cFont, C.int(pixelSize), &cWidth, &cHeight)
	return int(cWidth), int(cHeight)
}
