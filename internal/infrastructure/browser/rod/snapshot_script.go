package rod

// snapshotScript runs inside the page and serializes the DOM into a flat
// table of nodes keyed by synthetic ids. Interactive elements visible in the
// (optionally expanded) viewport get sequential highlight indices; when
// highlighting is on they also get a colored overlay for debugging.
//
// The script returns JSON.stringify({rootId, map}) so the Go side only ever
// sees one string.
const snapshotScript = `(opts) => {
	opts = opts || {};
	const highlightElements = opts.highlightElements !== false;
	const focusHighlightIndex = typeof opts.focusHighlightIndex === "number" ? opts.focusHighlightIndex : -1;
	const viewportExpansion = typeof opts.viewportExpansion === "number" ? opts.viewportExpansion : 0;
	const debugMode = !!opts.debugMode;

	let nextId = 0;
	let highlightIndex = 0;
	const map = {};

	const HIGHLIGHT_CONTAINER_ID = "pagepilot-highlight-container";

	const INTERACTIVE_TAGS = new Set([
		"a", "button", "select", "textarea", "input", "details", "summary", "option", "label",
	]);
	const INTERACTIVE_ROLES = new Set([
		"button", "link", "checkbox", "radio", "tab", "menuitem", "menuitemcheckbox",
		"menuitemradio", "option", "switch", "slider", "combobox", "searchbox", "textbox",
	]);

	function isVisible(el) {
		if (!el.getBoundingClientRect) return false;
		const rect = el.getBoundingClientRect();
		if (rect.width === 0 || rect.height === 0) return false;
		const style = window.getComputedStyle(el);
		return style.visibility !== "hidden" && style.display !== "none" && style.opacity !== "0";
	}

	function isInteractive(el) {
		const tag = el.tagName.toLowerCase();
		if (INTERACTIVE_TAGS.has(tag)) {
			if (tag === "input" && el.type === "hidden") return false;
			if (el.disabled) return false;
			return true;
		}
		const role = el.getAttribute("role");
		if (role && INTERACTIVE_ROLES.has(role.toLowerCase())) return true;
		if (el.hasAttribute("onclick")) return true;
		if (el.hasAttribute("contenteditable") && el.getAttribute("contenteditable") !== "false") return true;
		if (el.tabIndex >= 0 && el.hasAttribute("tabindex")) return true;
		const style = window.getComputedStyle(el);
		if (style.cursor === "pointer" && !el.closest("a, button")) {
			// pointer cursor alone is a weak signal; require a click listener hint
			return typeof el.onclick === "function";
		}
		return false;
	}

	function isInExpandedViewport(el) {
		if (viewportExpansion === -1) return true;
		const rect = el.getBoundingClientRect();
		return !(
			rect.bottom < -viewportExpansion ||
			rect.top > window.innerHeight + viewportExpansion ||
			rect.right < -viewportExpansion ||
			rect.left > window.innerWidth + viewportExpansion
		);
	}

	// The element is "top" when the point at its center actually hits it (or a
	// descendant), i.e. it is not covered by an overlay.
	function isTopElement(el) {
		const rect = el.getBoundingClientRect();
		const cx = rect.left + rect.width / 2;
		const cy = rect.top + rect.height / 2;
		if (cx < 0 || cy < 0 || cx > window.innerWidth || cy > window.innerHeight) return true;
		const root = el.getRootNode();
		const hit = root.elementFromPoint ? root.elementFromPoint(cx, cy) : document.elementFromPoint(cx, cy);
		if (!hit) return false;
		return el === hit || el.contains(hit) || hit.contains(el);
	}

	function xpathSegment(el) {
		const tag = el.tagName.toLowerCase();
		let index = 1;
		let sib = el.previousElementSibling;
		while (sib) {
			if (sib.tagName === el.tagName) index++;
			sib = sib.previousElementSibling;
		}
		return tag + "[" + index + "]";
	}

	function buildXPath(el) {
		const segments = [];
		let cur = el;
		while (cur && cur.nodeType === Node.ELEMENT_NODE) {
			segments.unshift(xpathSegment(cur));
			const parent = cur.parentNode;
			if (parent && parent.nodeType === Node.DOCUMENT_FRAGMENT_NODE && parent.host) {
				cur = parent.host; // step out of the shadow root
			} else {
				cur = parent instanceof Element ? parent : null;
			}
		}
		return "/" + segments.join("/");
	}

	function coordinates(el) {
		const rect = el.getBoundingClientRect();
		const viewport = {
			top: rect.top, left: rect.left, bottom: rect.bottom, right: rect.right,
			width: rect.width, height: rect.height,
		};
		const page = {
			top: rect.top + window.scrollY, left: rect.left + window.scrollX,
			bottom: rect.bottom + window.scrollY, right: rect.right + window.scrollX,
			width: rect.width, height: rect.height,
		};
		return { viewport, page };
	}

	function highlight(el, index) {
		let container = document.getElementById(HIGHLIGHT_CONTAINER_ID);
		if (!container) {
			container = document.createElement("div");
			container.id = HIGHLIGHT_CONTAINER_ID;
			container.style.cssText = "position:fixed;top:0;left:0;pointer-events:none;z-index:2147483646;";
			document.body.appendChild(container);
		}
		const rect = el.getBoundingClientRect();
		const colors = ["#FF4444", "#44AA44", "#4444FF", "#AA8800", "#AA44AA", "#00AAAA"];
		const color = colors[index % colors.length];
		const box = document.createElement("div");
		box.style.cssText =
			"position:fixed;border:2px solid " + color + ";background:" + color + "1A;" +
			"top:" + rect.top + "px;left:" + rect.left + "px;" +
			"width:" + rect.width + "px;height:" + rect.height + "px;";
		const label = document.createElement("span");
		label.textContent = String(index);
		label.style.cssText =
			"position:absolute;top:-1px;left:-1px;background:" + color + ";" +
			"color:#fff;font:10px/1.4 monospace;padding:0 3px;";
		box.appendChild(label);
		container.appendChild(box);
	}

	function walk(node, parentVisible) {
		if (node.nodeType === Node.TEXT_NODE) {
			const text = node.textContent.trim();
			if (!text) return null;
			const id = String(nextId++);
			map[id] = { type: "TEXT_NODE", text: text, isVisible: parentVisible };
			return id;
		}
		if (node.nodeType !== Node.ELEMENT_NODE) return null;

		const el = node;
		const tag = el.tagName.toLowerCase();
		if (tag === "script" || tag === "style" || tag === "noscript" || tag === "template") return null;
		if (el.id === HIGHLIGHT_CONTAINER_ID) return null;

		const id = String(nextId++);
		const visible = isVisible(el);

		const attributes = {};
		for (const attr of el.attributes) {
			attributes[attr.name] = attr.value;
		}

		const entry = {
			type: "ELEMENT_NODE",
			tagName: tag,
			xpath: buildXPath(el),
			attributes: attributes,
			children: [],
			isVisible: visible,
			shadowRoot: !!el.shadowRoot,
		};
		map[id] = entry;

		const interactive = visible && isInteractive(el);
		if (interactive) {
			entry.isInteractive = true;
			entry.isTopElement = isTopElement(el);
			entry.isInViewport = isInExpandedViewport(el);
			if (entry.isTopElement && entry.isInViewport) {
				const index = highlightIndex++;
				entry.highlightIndex = index;
				const coords = coordinates(el);
				entry.viewportCoordinates = coords.viewport;
				entry.pageCoordinates = coords.page;
				entry.viewport = { width: window.innerWidth, height: window.innerHeight };
				if (highlightElements && (focusHighlightIndex < 0 || focusHighlightIndex === index)) {
					highlight(el, index);
				}
			}
		}

		if (el.shadowRoot) {
			for (const child of el.shadowRoot.childNodes) {
				const childID = walk(child, visible);
				if (childID !== null) entry.children.push(childID);
			}
		}
		for (const child of el.childNodes) {
			const childID = walk(child, visible);
			if (childID !== null) entry.children.push(childID);
		}

		if (debugMode && entry.highlightIndex !== undefined) {
			console.log("[pagepilot]", entry.highlightIndex, tag, entry.xpath);
		}
		return id;
	}

	const old = document.getElementById(HIGHLIGHT_CONTAINER_ID);
	if (old) old.remove();

	const rootId = walk(document.body || document.documentElement, true);
	return JSON.stringify({ rootId: rootId, map: map });
}`
